// Package identity owns user accounts and credentials: registration, password
// verification, bearer token issuance and verification, and the user read and
// delete endpoints. Access to user records is gated by the authorization
// policy engine through the AccessPolicy port.
package identity
