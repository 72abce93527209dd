package planservice

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/dekarrin/shrdlite/internal/blocks"
	"github.com/dekarrin/shrdlite/internal/graph"
	"github.com/dekarrin/shrdlite/internal/ierr"
	"github.com/dekarrin/shrdlite/internal/interp"
	"github.com/dekarrin/shrdlite/internal/planner"
	"github.com/dekarrin/shrdlite/internal/reftoken"
	"github.com/dekarrin/shrdlite/internal/worldfile"
	"github.com/dekarrin/shrdlite/server/result"
	"github.com/dekarrin/shrdlite/server/serr"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func (svc *Service) handleLogin(w http.ResponseWriter, req *http.Request) {
	var body loginRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		result.BadRequest("malformed request body", "decode login body: %v", err).WriteResponse(w)
		return
	}

	u, err := svc.store.GetUserByUsername(req.Context(), body.Username)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			time.Sleep(unauthedDelay)
			result.Unauthorized("incorrect username or password").WriteResponse(w)
			return
		}
		result.InternalServerError("look up user %q: %v", body.Username, err).WriteResponse(w)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(body.Password)); err != nil {
		time.Sleep(unauthedDelay)
		result.Unauthorized("incorrect username or password").WriteResponse(w)
		return
	}

	tok, err := svc.generateJWT(u)
	if err != nil {
		result.InternalServerError("sign token: %v", err).WriteResponse(w)
		return
	}

	result.OK(loginResponse{Token: tok}, "login for %s", u.Username).WriteResponse(w)
}

// handleCreateWorld accepts a world-file (TOML) as the raw request body and
// persists it as a new session owned by the caller.
func (svc *Service) handleCreateWorld(w http.ResponseWriter, req *http.Request) {
	userID, _ := userFromContext(req.Context())

	data, err := io.ReadAll(req.Body)
	if err != nil {
		result.BadRequest("could not read request body", "read world body: %v", err).WriteResponse(w)
		return
	}

	state, err := worldfile.Load(data)
	if err != nil {
		result.BadRequest(err.Error(), "load world file: %v", err).WriteResponse(w)
		return
	}

	sess, err := svc.store.CreateSession(req.Context(), userID, state)
	if err != nil {
		result.InternalServerError("create session: %v", err).WriteResponse(w)
		return
	}

	result.Created(sessionResponse{
		ID:      sess.ID.String(),
		State:   sess.State,
		History: sess.History,
	}, "create session %s", sess.ID).WriteResponse(w)
}

func (svc *Service) handleGetSession(w http.ResponseWriter, req *http.Request) {
	userID, _ := userFromContext(req.Context())

	sess, err := svc.loadOwnedSession(w, req, userID)
	if err != nil {
		return
	}

	result.OK(sessionResponse{
		ID:      sess.ID.String(),
		State:   sess.State,
		History: sess.History,
	}, "get session %s", sess.ID).WriteResponse(w)
}

// sessionLocks holds one *sync.Mutex per session id, so that commands
// against the same session are handled one at a time.
var sessionLocks sync.Map

// handlePostCommand interprets and plans one utterance against a session's
// current state, applies the resulting plan, and persists the advanced
// state before returning it.
func (svc *Service) handlePostCommand(w http.ResponseWriter, req *http.Request) {
	userID, _ := userFromContext(req.Context())

	lock, _ := sessionLocks.LoadOrStore(chi.URLParam(req, "id"), &sync.Mutex{})
	lock.(*sync.Mutex).Lock()
	defer lock.(*sync.Mutex).Unlock()

	sess, err := svc.loadOwnedSession(w, req, userID)
	if err != nil {
		return
	}

	var body commandRequest
	if jerr := json.NewDecoder(req.Body).Decode(&body); jerr != nil {
		result.BadRequest("malformed request body", "decode command body: %v", jerr).WriteResponse(w)
		return
	}

	plan, newState, err := svc.runUtterance(sess.State, body.Utterance)
	if err != nil {
		result.BadRequest(ierr.Clarification(err), "run utterance %q: %v", body.Utterance, err).WriteResponse(w)
		return
	}

	history := append(append([]string(nil), sess.History...), body.Utterance)
	if err := svc.store.UpdateSessionState(req.Context(), sess.ID, history, newState); err != nil {
		result.InternalServerError("persist session %s: %v", sess.ID, err).WriteResponse(w)
		return
	}

	result.OK(commandResponse{
		ID:      sess.ID.String(),
		Plan:    plan,
		State:   newState,
		History: history,
	}, "command %q on session %s", body.Utterance, sess.ID).WriteResponse(w)
}

// runUtterance drives a single utterance through the parse/interpret/plan
// pipeline against state and applies the winning plan's actions, returning
// the plan's steps and the resulting state. It does not mutate state.
func (svc *Service) runUtterance(state blocks.WorldState, utterance string) ([]string, blocks.WorldState, error) {
	parses, err := reftoken.New().Parse(utterance)
	if err != nil {
		return nil, state, err
	}
	if len(parses) == 0 {
		return nil, state, ierr.ParseEmpty()
	}

	interpretations, err := interp.Interpret(parses, state)
	if err != nil {
		return nil, state, err
	}

	results, err := planner.Plan(interpretations, state, planner.DefaultTimeout)
	if err != nil {
		return nil, state, err
	}

	winner := results[0]
	next := state
	for _, step := range winner.Plan {
		if step == planner.VacuousUtterance {
			continue
		}
		applied, ok := graph.Apply(next, graph.Action(step))
		if !ok {
			return nil, state, errors.New("planned action is not legal from the current state")
		}
		next = applied
	}

	return winner.Plan, next, nil
}

func (svc *Service) loadOwnedSession(w http.ResponseWriter, req *http.Request, userID uuid.UUID) (Session, error) {
	id, err := uuid.Parse(chi.URLParam(req, "id"))
	if err != nil {
		result.BadRequest("session id is not a valid UUID").WriteResponse(w)
		return Session{}, err
	}

	sess, err := svc.store.GetSession(req.Context(), id, userID)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			result.NotFound("session %s not found for user %s", id, userID).WriteResponse(w)
			return Session{}, err
		}
		result.InternalServerError("get session %s: %v", id, err).WriteResponse(w)
		return Session{}, err
	}

	return sess, nil
}
