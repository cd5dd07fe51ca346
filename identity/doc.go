// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package identity defines the caller identity value type.

The chat integration knows about rich context objects (command contexts,
component contexts, raw usernames). This service does not: the integration
resolves whatever it has into a single "username#discriminator" style string
and sends it in the X-Identity header. Parse validates it once at the
boundary:

	voter, err := identity.FromRequest(r)

Internal packages (approval, roster, store) accept only identity.Identity,
never raw strings or request objects.
*/
package identity
