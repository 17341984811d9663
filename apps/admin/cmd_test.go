package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"testing"

	dummydb "github.com/trezcool/matokeo/storage/database/dummy"
)

func setup(t *testing.T) *commandLine {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	return &commandLine{
		accountRepo: dummydb.NewAccountRepository(db),
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	gooseRunFunc = func(command string, db *sql.DB, fsys fs.FS, dir string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s requires a VERSION argument", command)
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to requires a VERSION argument"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_addAdmin(t *testing.T) {
	cli := setup(t)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"addadmin"}, wantErr: errHelp},
		{name: "username but no email", args: []string{"addadmin", "-username", "boss"}, wantErr: errHelp},
		{name: "no password", args: []string{"addadmin", "-username", "boss", "-email", "boss@test.cd"}, wantErr: errHelp},
		{name: "create", args: []string{"addadmin", "-username", "boss", "-email", "boss@test.cd"}, extra: extra{pwd: "v3ryS3cr3t!"}},
		{name: "reset password", args: []string{"addadmin", "-username", "boss", "-email", "boss@test.cd"}, extra: extra{pwd: "ev3nM0reS3cr3t!"}},
	}

	var lastHash []byte
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err != nil {
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			adm, err := cli.accountRepo.GetAdminByUsername(context.Background(), "boss")
			if err != nil {
				t.Fatalf("GetAdminByUsername() failed: %v", err)
			}
			if bytes.Equal(adm.PasswordHash, lastHash) {
				t.Error("failed to update password")
			}
			lastHash = adm.PasswordHash

			if adm.Email != "boss@test.cd" {
				t.Errorf("email = %q; want %q", adm.Email, "boss@test.cd")
			}
			if err := adm.CheckPassword(tt.extra.(extra).pwd); err != nil {
				t.Errorf("CheckPassword() failed: %v", err)
			}
		})
	}
}
