package model

// Role names carried in the JWT "role" claim.
const (
    RoleStudent = "STUDENT"
    RoleAdmin   = "ADMIN"
)

// Account is one of the two fixed credential pairs the demo ships with.
// There is no registration; accounts are built at startup from configuration
// and the password is kept only as a bcrypt hash.
//
// Fields:
//  ID           – stable identifier used as the JWT subject and as the
//                 student identity on ledger records.
//  Username     – login name.
//  PasswordHash – bcrypt hash of the password.
//  Role         – STUDENT or ADMIN.
type Account struct {
    ID           string
    Username     string
    PasswordHash string
    Role         string
}
