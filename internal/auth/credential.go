package auth

import "context"

type credentialKey struct{}

// WithCredential returns a copy of ctx carrying the caller's verified bearer
// credential, so downstream calls to the identity provider's other services
// run as that caller.
func WithCredential(ctx context.Context, credential string) context.Context {
	return context.WithValue(ctx, credentialKey{}, credential)
}

// CredentialFrom returns the credential stored by WithCredential
func CredentialFrom(ctx context.Context) (string, bool) {
	credential, ok := ctx.Value(credentialKey{}).(string)
	return credential, ok && credential != ""
}
