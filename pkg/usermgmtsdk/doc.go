/*
Package usermgmtsdk provides the wire types and a client for the user
management service.

# Overview

The server and the client share the request and response types defined here,
so a handler and the SDK can never disagree about field names. Every failure
the server reports is a JSON object with a single "message" field; the client
turns those into *APIError values.

	client := usermgmtsdk.NewClient("http://localhost:8000")

	signup, err := client.Signup(ctx, usermgmtsdk.SignupRequest{
		Username: "t1",
		Email:    "t1@x.com",
		Password: "Pw@123",
	})

	login, err := client.Login(ctx, usermgmtsdk.LoginRequest{
		Email:    "t1@x.com",
		Password: "Pw@123",
	})

	profile, err := client.GetProfile(ctx, login.Token)

# Error Handling

Non-2xx responses are returned as *APIError:

	_, err := client.Login(ctx, req)
	var apiErr *usermgmtsdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
		// wrong email or password
	}

Transport failures (connection refused, timeouts) are returned as plain
wrapped errors.
*/
package usermgmtsdk
