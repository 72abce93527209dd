// Package planservice exposes the blocks-world interpreter and planner over
// HTTP: a caller logs in, creates a world from a world-file, and then sends
// utterances against it one at a time, each advancing the persisted state by
// one plan.
package planservice

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dekarrin/rezi"
	"github.com/dekarrin/shrdlite/internal/blocks"
	"github.com/dekarrin/shrdlite/server/serr"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"modernc.org/sqlite"
)

// sqliteConstraintViolation is the SQLITE_CONSTRAINT result code, returned
// for (among other things) a UNIQUE index violation.
const sqliteConstraintViolation = 19

// User is an account that can log in and own worlds.
type User struct {
	ID             uuid.UUID
	Username       string
	PasswordHash   string
	LastLogoutTime time.Time
}

// Session is a persisted blocks-world, owned by a user, along with the log
// of utterances handled against it so far.
type Session struct {
	ID      uuid.UUID
	UserID  uuid.UUID
	State   blocks.WorldState
	History []string
	Created time.Time
	Updated time.Time
}

// Store is the sqlite-backed persistence layer for the plan service: users,
// and the world sessions they own.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if necessary) the sqlite database at file and
// ensures its schema exists.
func OpenStore(file string) (*Store, error) {
	db, err := sql.Open("sqlite", file)
	if err != nil {
		return nil, serr.WrapDB("open database", err)
	}

	st := &Store{db: db}
	if err := st.init(); err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

func (st *Store) init() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT NOT NULL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			last_logout INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT NOT NULL PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			state TEXT NOT NULL,
			history TEXT NOT NULL,
			created INTEGER NOT NULL,
			updated INTEGER NOT NULL
		);`,
	}
	for _, s := range stmts {
		if _, err := st.db.Exec(s); err != nil {
			return serr.WrapDB("create schema", err)
		}
	}
	return nil
}

// Close closes the underlying database handle.
func (st *Store) Close() error {
	return st.db.Close()
}

// CreateUser hashes password and inserts a new user row. Returns
// serr.ErrAlreadyExists if username is taken.
func (st *Store) CreateUser(ctx context.Context, username, password string) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return User{}, fmt.Errorf("generate user id: %w", err)
	}

	_, err = st.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, last_logout) VALUES (?, ?, ?, ?)`,
		id.String(), username, string(hash), int64(0),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, serr.New("username already taken", serr.ErrAlreadyExists)
		}
		return User{}, serr.WrapDB("create user", err)
	}

	return User{ID: id, Username: username, PasswordHash: string(hash)}, nil
}

// GetUserByUsername looks up a user by username. Returns serr.ErrNotFound
// if none exists.
func (st *Store) GetUserByUsername(ctx context.Context, username string) (User, error) {
	row := st.db.QueryRowContext(ctx,
		`SELECT id, password_hash, last_logout FROM users WHERE username = ?;`, username,
	)
	return st.scanUser(row, username)
}

// GetUserByID looks up a user by ID. Returns serr.ErrNotFound if none
// exists.
func (st *Store) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	row := st.db.QueryRowContext(ctx,
		`SELECT username, password_hash, last_logout FROM users WHERE id = ?;`, id.String(),
	)

	var u User
	var lastLogout int64
	err := row.Scan(&u.Username, &u.PasswordHash, &lastLogout)
	if err == sql.ErrNoRows {
		return User{}, serr.New("user not found", serr.ErrNotFound)
	}
	if err != nil {
		return User{}, serr.WrapDB("get user", err)
	}
	u.ID = id
	u.LastLogoutTime = time.Unix(lastLogout, 0)
	return u, nil
}

func (st *Store) scanUser(row *sql.Row, username string) (User, error) {
	var idStr string
	var hash string
	var lastLogout int64
	err := row.Scan(&idStr, &hash, &lastLogout)
	if err == sql.ErrNoRows {
		return User{}, serr.New("user not found", serr.ErrNotFound)
	}
	if err != nil {
		return User{}, serr.WrapDB("get user", err)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return User{}, fmt.Errorf("stored user ID %q is invalid: %w", idStr, err)
	}

	return User{
		ID:             id,
		Username:       username,
		PasswordHash:   hash,
		LastLogoutTime: time.Unix(lastLogout, 0),
	}, nil
}

// CreateSession persists a new session owning the given initial world
// state for userID.
func (st *Store) CreateSession(ctx context.Context, userID uuid.UUID, state blocks.WorldState) (Session, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return Session{}, fmt.Errorf("generate session id: %w", err)
	}

	now := time.Now()
	s := Session{ID: id, UserID: userID, State: state, Created: now, Updated: now}

	encState, err := encodeState(state)
	if err != nil {
		return Session{}, err
	}

	_, err = st.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, state, history, created, updated) VALUES (?, ?, ?, ?, ?, ?)`,
		id.String(), userID.String(), encState, "", now.Unix(), now.Unix(),
	)
	if err != nil {
		return Session{}, serr.WrapDB("create session", err)
	}

	return s, nil
}

// GetSession loads a session by ID. Returns serr.ErrNotFound if none
// exists, or if it exists but is not owned by userID.
func (st *Store) GetSession(ctx context.Context, id, userID uuid.UUID) (Session, error) {
	row := st.db.QueryRowContext(ctx,
		`SELECT user_id, state, history, created, updated FROM sessions WHERE id = ?;`, id.String(),
	)

	var ownerStr, encState, encHistory string
	var created, updated int64
	err := row.Scan(&ownerStr, &encState, &encHistory, &created, &updated)
	if err == sql.ErrNoRows {
		return Session{}, serr.New("session not found", serr.ErrNotFound)
	}
	if err != nil {
		return Session{}, serr.WrapDB("get session", err)
	}

	owner, err := uuid.Parse(ownerStr)
	if err != nil {
		return Session{}, fmt.Errorf("stored user ID %q is invalid: %w", ownerStr, err)
	}
	if owner != userID {
		return Session{}, serr.New("session not found", serr.ErrNotFound)
	}

	state, err := decodeState(encState)
	if err != nil {
		return Session{}, err
	}

	return Session{
		ID:      id,
		UserID:  owner,
		State:   state,
		History: decodeHistory(encHistory),
		Created: time.Unix(created, 0),
		Updated: time.Unix(updated, 0),
	}, nil
}

// UpdateSessionState persists a new world state and replaces the session's
// command history with history.
func (st *Store) UpdateSessionState(ctx context.Context, id uuid.UUID, history []string, state blocks.WorldState) error {
	encState, err := encodeState(state)
	if err != nil {
		return err
	}

	res, err := st.db.ExecContext(ctx,
		`UPDATE sessions SET state = ?, history = ?, updated = ? WHERE id = ?;`,
		encState, encodeHistory(history), time.Now().Unix(), id.String(),
	)
	if err != nil {
		return serr.WrapDB("update session", err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return serr.WrapDB("update session", err)
	}
	if rowsAff < 1 {
		return serr.New("session not found", serr.ErrNotFound)
	}
	return nil
}

func encodeState(state blocks.WorldState) (string, error) {
	data := rezi.EncBinary(&state)
	return base64.StdEncoding.EncodeToString(data), nil
}

func decodeState(enc string) (blocks.WorldState, error) {
	data, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return blocks.WorldState{}, fmt.Errorf("stored world state is not valid base64: %w", err)
	}
	var state blocks.WorldState
	if _, err := rezi.DecBinary(data, &state); err != nil {
		return blocks.WorldState{}, fmt.Errorf("stored world state is corrupt: %w", err)
	}
	return state, nil
}

// historySep separates utterances in the history column. It is the ASCII
// unit separator, chosen so it can never appear in a typed utterance.
const historySep = "\x1f"

func encodeHistory(history []string) string {
	return strings.Join(history, historySep)
}

func decodeHistory(enc string) []string {
	if enc == "" {
		return nil
	}
	return strings.Split(enc, historySep)
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code() == sqliteConstraintViolation
}
