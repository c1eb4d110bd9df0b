// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// User is the locally-stored profile marker gating article generation.
// It is not a verified identity: there is no password, token, or
// credential check anywhere in the application. At most one User exists
// at a time (the current session user).
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// WordPressConfig holds the connection details for a WordPress site that
// finished articles can be published to. IsConfigured gates publish
// actions; none of the fields are validated against the network until a
// publish is attempted.
type WordPressConfig struct {
	SiteURL             string `json:"site_url"`
	Username            string `json:"username"`
	ApplicationPassword string `json:"application_password"`
	IsConfigured        bool   `json:"is_configured"`
}
