package cmd

import (
	"fmt"

	"tdo/internal/apiclient"
	"tdo/internal/output"
	"tdo/internal/session"
)

// newClient builds an API client from stored credentials. A 401 from
// any call clears the stored session so the next command prompts for a
// fresh login.
func newClient() (*apiclient.Client, *session.Credentials, error) {
	creds, err := session.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load session: %w", err)
	}
	if creds == nil {
		return nil, nil, fmt.Errorf("not logged in (run \"tdo login\")")
	}

	client := apiclient.New(session.ServerURL(creds), creds)
	client.OnUnauthorized = func() {
		if err := session.Clear(); err == nil {
			output.Warning("session expired, logged out")
		}
	}
	return client, creds, nil
}

// anonClient builds an API client with no credentials, for login and
// registration.
func anonClient() *apiclient.Client {
	creds, _ := session.Load()
	return apiclient.New(session.ServerURL(creds), nil)
}
