package journal

import (
	"crypto/rand"
	"crypto/subtle"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// User is a local journal owner. The PIN is optional and stored only as
// an argon2id hash.
type User struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	PINHash   *string `json:"-"`
	CreatedAt string  `json:"created_at"`
}

// HasPIN reports whether the user protected the journal with a PIN.
func (u *User) HasPIN() bool {
	return u.PINHash != nil && *u.PINHash != ""
}

// argon2id parameters for new hashes. CheckPIN reads the parameters from
// the stored hash, so changing these does not break existing users.
const (
	argonTime    = 2
	argonMemory  = 19 * 1024
	argonThreads = 1
	argonKeyLen  = 32
	argonSaltLen = 16
)

// CreateUser registers a user. An empty pin stores no hash.
func (s *Store) CreateUser(name, pin string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("journal: create user: %w: name is required", ErrInvalidEntry)
	}

	var hash *string
	if pin != "" {
		h, err := HashPIN(pin)
		if err != nil {
			return 0, fmt.Errorf("journal: create user: %w", err)
		}
		hash = &h
	}

	res, err := s.execHook(s.db, `INSERT INTO users (name, pin_hash) VALUES (?, ?)`, name, hash)
	if err != nil {
		return 0, fmt.Errorf("journal: create user: %w: %w", ErrWrite, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("journal: create user: %w: %w", ErrWrite, err)
	}
	s.log.Info("user created", "id", id, "pin", hash != nil)
	return id, nil
}

// GetUser retrieves a user by id.
func (s *Store) GetUser(id int64) (*User, error) {
	var u User
	err := s.db.QueryRow(
		`SELECT id, name, pin_hash, ifnull(created_at, '') FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Name, &u.PINHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("journal: get user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("journal: get user %d: %w", id, err)
	}
	return &u, nil
}

// VerifyPIN checks pin against the stored hash. A user without a PIN
// accepts only the empty pin.
func (s *Store) VerifyPIN(id int64, pin string) (bool, error) {
	u, err := s.GetUser(id)
	if err != nil {
		return false, err
	}
	if !u.HasPIN() {
		return pin == "", nil
	}
	return CheckPIN(*u.PINHash, pin)
}

// HashPIN returns a PHC-formatted argon2id hash of pin with a random salt.
func HashPIN(pin string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(pin), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// CheckPIN compares pin with a PHC-formatted argon2id hash in constant time.
func CheckPIN(encoded, pin string) (bool, error) {
	parts := strings.Split(encoded, "$")
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, hash
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, fmt.Errorf("journal: unsupported pin hash format")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false, fmt.Errorf("journal: unsupported argon2 version %q", parts[2])
	}

	var memory, iterations uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false, fmt.Errorf("journal: parse argon2 params: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("journal: decode salt: %w", err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("journal: decode hash: %w", err)
	}

	got := argon2.IDKey([]byte(pin), salt, iterations, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
