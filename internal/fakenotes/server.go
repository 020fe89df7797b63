// Package fakenotes provides a fake notes API server for testing.
//
// It implements the whole HTTP surface the client speaks — auth, notes,
// labels, search and the convenience listings — over in-memory state, so
// client and collection tests run without a live backend. Stub failures can
// be injected per operation to exercise error mapping and rollback paths.
package fakenotes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/keepclone/keep.go/pkg/models"
)

// Operation names accepted by Stub. They follow the server handler names.
const (
	OpListNotes     = "listNotes"
	OpCreateNote    = "createNote"
	OpGetNote       = "getNote"
	OpUpdateNote    = "updateNote"
	OpDeleteNote    = "deleteNote"
	OpTogglePin     = "togglePin"
	OpToggleArchive = "toggleArchive"
	OpSetColor      = "setColor"
	OpSearchNotes   = "searchNotes"
	OpListPinned    = "listPinned"
	OpListArchived  = "listArchived"
	OpListLabels    = "listLabels"
	OpCreateLabel   = "createLabel"
	OpUpdateLabel   = "updateLabel"
	OpDeleteLabel   = "deleteLabel"
	OpAttachLabel   = "attachLabel"
	OpDetachLabel   = "detachLabel"
)

// stub is a one-shot injected failure for a single operation.
type stub struct {
	status  int
	message string
	times   int
}

type account struct {
	user     models.User
	password string
}

// Server is the fake API. All state is in memory and guarded by one mutex;
// fidelity matters here, not throughput.
type Server struct {
	mu       sync.Mutex
	accounts map[string]*account // by email
	tokens   map[string]string   // token -> user id
	notes    []*models.Note      // newest first, mirroring server ordering
	labels   []*models.Label
	noteLbls map[string]map[string]bool // note id -> label id set
	stubs    map[string]*stub
	google   map[string]string // accepted provider token -> email

	httpServer *httptest.Server
}

// New starts the fake server on an ephemeral port.
func New() *Server {
	s := &Server{
		accounts: make(map[string]*account),
		tokens:   make(map[string]string),
		noteLbls: make(map[string]map[string]bool),
		stubs:    make(map[string]*stub),
		google:   make(map[string]string),
	}

	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	r.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/auth/google", s.handleGoogle).Methods(http.MethodPost)
	r.HandleFunc("/auth/me", s.authed(s.handleMe)).Methods(http.MethodGet)

	// Fixed-path note routes must register before the {id} routes.
	r.HandleFunc("/notes/search", s.authed(s.op(OpSearchNotes, s.handleSearch))).Methods(http.MethodGet)
	r.HandleFunc("/notes/pinned", s.authed(s.op(OpListPinned, s.handlePinned))).Methods(http.MethodGet)
	r.HandleFunc("/notes/archived", s.authed(s.op(OpListArchived, s.handleArchived))).Methods(http.MethodGet)

	r.HandleFunc("/notes", s.authed(s.op(OpListNotes, s.handleListNotes))).Methods(http.MethodGet)
	r.HandleFunc("/notes", s.authed(s.op(OpCreateNote, s.handleCreateNote))).Methods(http.MethodPost)
	r.HandleFunc("/notes/{id}", s.authed(s.op(OpGetNote, s.handleGetNote))).Methods(http.MethodGet)
	r.HandleFunc("/notes/{id}", s.authed(s.op(OpUpdateNote, s.handleUpdateNote))).Methods(http.MethodPut)
	r.HandleFunc("/notes/{id}", s.authed(s.op(OpDeleteNote, s.handleDeleteNote))).Methods(http.MethodDelete)
	r.HandleFunc("/notes/{id}/pin", s.authed(s.op(OpTogglePin, s.handleTogglePin))).Methods(http.MethodPatch)
	r.HandleFunc("/notes/{id}/archive", s.authed(s.op(OpToggleArchive, s.handleToggleArchive))).Methods(http.MethodPatch)
	r.HandleFunc("/notes/{id}/color", s.authed(s.op(OpSetColor, s.handleSetColor))).Methods(http.MethodPatch)
	r.HandleFunc("/notes/{note_id}/labels", s.authed(s.op(OpAttachLabel, s.handleAttachLabel))).Methods(http.MethodPost)
	r.HandleFunc("/notes/{note_id}/labels/{label_id}", s.authed(s.op(OpDetachLabel, s.handleDetachLabel))).Methods(http.MethodDelete)

	r.HandleFunc("/labels", s.authed(s.op(OpListLabels, s.handleListLabels))).Methods(http.MethodGet)
	r.HandleFunc("/labels", s.authed(s.op(OpCreateLabel, s.handleCreateLabel))).Methods(http.MethodPost)
	r.HandleFunc("/labels/{id}", s.authed(s.handleGetLabel)).Methods(http.MethodGet)
	r.HandleFunc("/labels/{id}", s.authed(s.op(OpUpdateLabel, s.handleUpdateLabel))).Methods(http.MethodPut)
	r.HandleFunc("/labels/{id}", s.authed(s.op(OpDeleteLabel, s.handleDeleteLabel))).Methods(http.MethodDelete)
	r.HandleFunc("/labels/{id}/notes", s.authed(s.handleNotesByLabel)).Methods(http.MethodGet)

	s.httpServer = httptest.NewServer(r)
	return s
}

// URL returns the base URL of the running server.
func (s *Server) URL() string { return s.httpServer.URL }

// Close shuts the server down.
func (s *Server) Close() { s.httpServer.Close() }

// Stub makes the next call to op fail with the given status and message.
func (s *Server) Stub(op string, status int, message string) {
	s.StubN(op, status, message, 1)
}

// StubN fails the next n calls to op.
func (s *Server) StubN(op string, status int, message string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stubs[op] = &stub{status: status, message: message, times: n}
}

// AllowGoogleToken registers a provider token the fake exchange accepts,
// bound to an existing account's email.
func (s *Server) AllowGoogleToken(token, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.google[token] = email
}

// SeedUser creates an account directly and returns a valid token for it.
func (s *Server) SeedUser(email, password, name string) (models.User, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.createUserLocked(email, password, name, models.ProviderLocal)
	token := s.issueTokenLocked(u.ID)
	return u, token
}

// SeedNote inserts a note owned by the given user, newest-first like the
// real server.
func (s *Server) SeedNote(userID string, n models.Note) models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	n.ID = uuid.NewString()
	n.UserID = userID
	if n.Color == "" {
		n.Color = models.DefaultColor
	}
	n.CreatedAt = now
	n.UpdatedAt = now
	cp := n
	s.notes = append([]*models.Note{&cp}, s.notes...)
	return n
}

func (s *Server) createUserLocked(email, password, name, provider string) models.User {
	now := time.Now().UTC()
	u := models.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		Provider:  provider,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.accounts[email] = &account{user: u, password: password}
	return u
}

func (s *Server) issueTokenLocked(userID string) string {
	token := uuid.NewString()
	s.tokens[token] = userID
	return token
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// op wraps a handler with stub failure injection.
func (s *Server) op(name string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		st, ok := s.stubs[name]
		if ok && st.times > 0 {
			st.times--
			if st.times == 0 {
				delete(s.stubs, name)
			}
			status, msg := st.status, st.message
			s.mu.Unlock()
			writeError(w, status, msg)
			return
		}
		s.mu.Unlock()
		next(w, r)
	}
}

// authed resolves the bearer token to a user id placed in the request
// context via header rewriting; missing or unknown tokens get 401.
func (s *Server) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "missing or invalid authorization header")
			return
		}
		token := strings.TrimPrefix(auth, "Bearer ")
		s.mu.Lock()
		userID, ok := s.tokens[token]
		s.mu.Unlock()
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		r.Header.Set("X-Fake-User-ID", userID)
		next(w, r)
	}
}

func requestUser(r *http.Request) string {
	return r.Header.Get("X-Fake-User-ID")
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "email, password and name are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[req.Email]; exists {
		writeError(w, http.StatusBadRequest, "user already exists")
		return
	}
	u := s.createUserLocked(req.Email, req.Password, req.Name, models.ProviderLocal)
	token := s.issueTokenLocked(u.ID)
	writeJSON(w, http.StatusCreated, map[string]any{"user": u, "token": token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[req.Email]
	if !ok || acc.password != req.Password {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token := s.issueTokenLocked(acc.user.ID)
	writeJSON(w, http.StatusOK, map[string]any{"user": acc.user, "token": token})
}

func (s *Server) handleGoogle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.google[req.Token]
	if !ok {
		writeError(w, http.StatusBadRequest, "google token rejected")
		return
	}
	acc, ok := s.accounts[email]
	if !ok {
		s.createUserLocked(email, "", email, models.ProviderGoogle)
		acc = s.accounts[email]
	}
	token := s.issueTokenLocked(acc.user.ID)
	writeJSON(w, http.StatusOK, map[string]any{"user": acc.user, "token": token})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID := requestUser(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range s.accounts {
		if acc.user.ID == userID {
			writeJSON(w, http.StatusOK, acc.user)
			return
		}
	}
	writeError(w, http.StatusUnauthorized, "unknown user")
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("archived") == "true"
	includeDeleted := r.URL.Query().Get("deleted") == "true"
	userID := requestUser(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.Note{}
	for _, n := range s.notes {
		if n.UserID != userID {
			continue
		}
		if n.IsArchived && !includeArchived {
			continue
		}
		if n.IsDeleted && !includeDeleted {
			continue
		}
		out = append(out, s.withLabelsLocked(n))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Color    string `json:"color"`
		IsPinned *bool  `json:"is_pinned"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" && strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "either title or content must be provided")
		return
	}

	now := time.Now().UTC()
	n := &models.Note{
		ID:        uuid.NewString(),
		UserID:    requestUser(r),
		Title:     req.Title,
		Content:   req.Content,
		Color:     models.DefaultColor,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Color != "" {
		n.Color = req.Color
	}
	if req.IsPinned != nil {
		n.IsPinned = *req.IsPinned
	}

	s.mu.Lock()
	s.notes = append([]*models.Note{n}, s.notes...)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, n)
}

// findNoteLocked returns the caller's note with the given id, or nil.
func (s *Server) findNoteLocked(id, userID string) *models.Note {
	for _, n := range s.notes {
		if n.ID == id && n.UserID == userID {
			return n
		}
	}
	return nil
}

func (s *Server) withLabelsLocked(n *models.Note) *models.Note {
	cp := *n
	cp.Labels = nil
	for lblID := range s.noteLbls[n.ID] {
		for _, l := range s.labels {
			if l.ID == lblID {
				cp.Labels = append(cp.Labels, *l)
			}
		}
	}
	sort.Slice(cp.Labels, func(i, j int) bool { return cp.Labels[i].Name < cp.Labels[j].Name })
	return &cp
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.findNoteLocked(id, requestUser(r))
	if n == nil {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	writeJSON(w, http.StatusOK, s.withLabelsLocked(n))
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title      *string `json:"title"`
		Content    *string `json:"content"`
		Color      *string `json:"color"`
		IsPinned   *bool   `json:"is_pinned"`
		IsArchived *bool   `json:"is_archived"`
		Position   *int    `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.findNoteLocked(id, requestUser(r))
	if n == nil {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	if req.Title != nil {
		n.Title = *req.Title
	}
	if req.Content != nil {
		n.Content = *req.Content
	}
	if req.Color != nil {
		n.Color = *req.Color
	}
	if req.IsPinned != nil {
		n.IsPinned = *req.IsPinned
	}
	if req.IsArchived != nil {
		n.IsArchived = *req.IsArchived
	}
	if req.Position != nil {
		n.Position = *req.Position
	}
	n.UpdatedAt = time.Now().UTC()
	writeJSON(w, http.StatusOK, s.withLabelsLocked(n))
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	permanent := r.URL.Query().Get("permanent") == "true"

	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.findNoteLocked(id, requestUser(r))
	if n == nil {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	if permanent {
		for i, cand := range s.notes {
			if cand.ID == id {
				s.notes = append(s.notes[:i], s.notes[i+1:]...)
				break
			}
		}
		delete(s.noteLbls, id)
	} else {
		n.IsDeleted = true
		n.UpdatedAt = time.Now().UTC()
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) togglePatch(w http.ResponseWriter, r *http.Request, flip func(*models.Note)) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.findNoteLocked(id, requestUser(r))
	if n == nil {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	flip(n)
	n.UpdatedAt = time.Now().UTC()
	writeJSON(w, http.StatusOK, s.withLabelsLocked(n))
}

func (s *Server) handleTogglePin(w http.ResponseWriter, r *http.Request) {
	s.togglePatch(w, r, func(n *models.Note) { n.IsPinned = !n.IsPinned })
}

func (s *Server) handleToggleArchive(w http.ResponseWriter, r *http.Request) {
	s.togglePatch(w, r, func(n *models.Note) { n.IsArchived = !n.IsArchived })
}

func (s *Server) handleSetColor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Color string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !models.ValidColor(req.Color) {
		writeError(w, http.StatusBadRequest, "invalid color format")
		return
	}
	s.togglePatch(w, r, func(n *models.Note) {
		if req.Color == "" {
			n.Color = models.DefaultColor
		} else {
			n.Color = req.Color
		}
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(r.URL.Query().Get("q"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if limit <= 0 {
		limit = 20
	}
	userID := requestUser(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	matched := []*models.Note{}
	for _, n := range s.notes {
		if n.UserID != userID || n.IsDeleted {
			continue
		}
		if strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q) {
			matched = append(matched, s.withLabelsLocked(n))
		}
	}
	offset := page * limit
	if offset >= len(matched) {
		writeJSON(w, http.StatusOK, []*models.Note{})
		return
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	writeJSON(w, http.StatusOK, matched[offset:end])
}

func (s *Server) handlePinned(w http.ResponseWriter, r *http.Request) {
	userID := requestUser(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.Note{}
	for _, n := range s.notes {
		if n.UserID == userID && n.IsPinned && !n.IsArchived && !n.IsDeleted {
			out = append(out, s.withLabelsLocked(n))
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleArchived(w http.ResponseWriter, r *http.Request) {
	userID := requestUser(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.Note{}
	for _, n := range s.notes {
		if n.UserID == userID && n.IsArchived && !n.IsDeleted {
			out = append(out, s.withLabelsLocked(n))
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListLabels(w http.ResponseWriter, r *http.Request) {
	userID := requestUser(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.Label{}
	for _, l := range s.labels {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateLabel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	now := time.Now().UTC()
	l := &models.Label{
		ID:        uuid.NewString(),
		UserID:    requestUser(r),
		Name:      strings.TrimSpace(req.Name),
		Color:     req.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if l.Color == "" {
		l.Color = models.DefaultColor
	}

	s.mu.Lock()
	s.labels = append(s.labels, l)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, l)
}

func (s *Server) findLabelLocked(id, userID string) *models.Label {
	for _, l := range s.labels {
		if l.ID == id && l.UserID == userID {
			return l
		}
	}
	return nil
}

func (s *Server) handleGetLabel(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.findLabelLocked(mux.Vars(r)["id"], requestUser(r))
	if l == nil {
		writeError(w, http.StatusNotFound, "label not found")
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleUpdateLabel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  *string `json:"name"`
		Color *string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.findLabelLocked(mux.Vars(r)["id"], requestUser(r))
	if l == nil {
		writeError(w, http.StatusNotFound, "label not found")
		return
	}
	if req.Name != nil {
		l.Name = strings.TrimSpace(*req.Name)
	}
	if req.Color != nil {
		l.Color = *req.Color
	}
	l.UpdatedAt = time.Now().UTC()
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleDeleteLabel(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.findLabelLocked(id, requestUser(r))
	if l == nil {
		writeError(w, http.StatusNotFound, "label not found")
		return
	}
	for i, cand := range s.labels {
		if cand.ID == id {
			s.labels = append(s.labels[:i], s.labels[i+1:]...)
			break
		}
	}
	for _, set := range s.noteLbls {
		delete(set, id)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleNotesByLabel(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	userID := requestUser(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findLabelLocked(id, userID) == nil {
		writeError(w, http.StatusNotFound, "label not found")
		return
	}
	out := []*models.Note{}
	for _, n := range s.notes {
		if n.UserID == userID && s.noteLbls[n.ID][id] {
			out = append(out, s.withLabelsLocked(n))
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAttachLabel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LabelID string `json:"label_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	noteID := mux.Vars(r)["note_id"]
	userID := requestUser(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findNoteLocked(noteID, userID) == nil {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	if s.findLabelLocked(req.LabelID, userID) == nil {
		writeError(w, http.StatusBadRequest, "label not found")
		return
	}
	if s.noteLbls[noteID] == nil {
		s.noteLbls[noteID] = make(map[string]bool)
	}
	s.noteLbls[noteID][req.LabelID] = true
	writeJSON(w, http.StatusOK, map[string]string{"message": "Label attached to note successfully"})
}

func (s *Server) handleDetachLabel(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["note_id"]
	labelID := mux.Vars(r)["label_id"]
	userID := requestUser(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findNoteLocked(noteID, userID) == nil {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	delete(s.noteLbls[noteID], labelID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Label detached from note successfully"})
}
