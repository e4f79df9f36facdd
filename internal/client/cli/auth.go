package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/akorchagin/authgate/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for an email and password and attempts to create
// a new account. Registration also signs the user in: the backend returns an
// initial access token which the App keeps in memory for subsequent calls.
//
// The password byte slice is securely wiped before returning. Any I/O or
// service error is returned unchanged.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	secret, err := a.api.Register(ctx, userName, string(password))
	if err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	a.secret = secret
	a.userName = userName
	fmt.Println("Success!")
	return nil
}

// Login prompts the user for credentials and exchanges them for a fresh
// access token. On success the token and email are kept in memory for the
// session; the password is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	secret, err := a.api.Login(ctx, userName, string(password))
	if err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	a.secret = secret
	a.userName = userName
	log.Printf("Login successful")
	return nil
}

// Whoami asks the backend which account the current token resolves to and
// prints it. A rejected token clears the in-memory session so the prompt
// reflects reality.
func (a *App) Whoami(ctx context.Context) error {
	user, err := a.api.CurrentUser(ctx, a.secret)
	if err != nil {
		log.Printf("Request unsuccessful: %s", err.Error())
		if errors.Is(err, common.ErrorUnauthorized) {
			a.secret = ""
			a.userName = ""
		}
		return err
	}

	printlnFn(fmt.Sprintf("id: %s email: %s", user.ID, user.Email))
	return nil
}

// Logout revokes the current token on the server and forgets it locally.
// The local session is cleared even if the server call fails: a token the
// user asked to discard should not be reused.
func (a *App) Logout(ctx context.Context) error {
	err := a.api.Logout(ctx, a.secret)
	a.secret = ""
	a.userName = ""
	if err != nil {
		log.Printf("Logout unsuccessful: %s", err.Error())
		return err
	}
	printlnFn("Logged out")
	return nil
}
