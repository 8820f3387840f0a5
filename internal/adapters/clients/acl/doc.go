// Package acl is the anti-corruption layer between quotectl and a remote
// quote store. It owns the wire DTOs and turns HTTP outcomes into domain
// values, so callers only ever see [domain.Quote] and domain errors:
//
//   - 404 "Error 404: No quote found" -> [domain.ErrNotFound]
//   - 400 "Error 400: Post syntax incorrect." -> [domain.ErrValidation]
//   - 5xx, transport failures, an open circuit -> [domain.ErrUnavailable]
//
// [QuoteClient] also implements ports.HealthChecker against /-/ready.
package acl
