package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"quote-quiz/internal/domain"
	"quote-quiz/internal/domain/model"
	"quote-quiz/internal/infra/logging"
	"quote-quiz/internal/usecase"

	"github.com/go-chi/chi/v5"
)

const cooldownMessage = "You already tried guessing. Try again after 12 hours."

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"message": msg})
}

// ---- users ----

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Score int    `json:"score"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	u, err := s.userUC.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyExists):
			writeError(w, http.StatusConflict, "User already exists with this email")
		case errors.Is(err, domain.ErrInvalidArgument):
			writeError(w, http.StatusBadRequest, "invalid email or password too short")
		default:
			s.serverError(w, r, err, "register failed")
		}
		return
	}
	writeJSON(w, http.StatusCreated, userResponse{ID: u.ID, Email: u.Email, Name: u.Name, Score: u.Score})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string       `json:"accessToken"`
	User        userResponse `json:"user"`
	Message     string       `json:"message"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	u, err := s.userUC.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		s.serverError(w, r, err, "login failed")
		return
	}
	token, err := s.auth.Mint(u)
	if err != nil {
		s.serverError(w, r, err, "token mint failed")
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		User:        userResponse{ID: u.ID, Email: u.Email, Name: u.Name, Score: u.Score},
		Message:     "Login successful",
	})
}

type topUsersResponse struct {
	Users []userResponse `json:"users"`
	Total int            `json:"total"`
}

func (s *Server) handleTopUsers(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 100 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer between 1 and 100")
			return
		}
		limit = n
	}
	users, total, err := s.userUC.TopUsers(r.Context(), limit)
	if err != nil {
		s.serverError(w, r, err, "top users failed")
		return
	}
	resp := topUsersResponse{Users: make([]userResponse, 0, len(users)), Total: total}
	for _, u := range users {
		resp.Users = append(resp.Users, userResponse{ID: u.ID, Email: u.Email, Name: u.Name, Score: u.Score})
	}
	writeJSON(w, http.StatusOK, resp)
}

// ---- quotes ----

// nextQuoteResponse deliberately omits the author: it is the answer.
type nextQuoteResponse struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
}

func (s *Server) handleNextQuote(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required. Please provide a valid Bearer token.")
		return
	}
	priority := model.ParseQuotePriority(r.URL.Query().Get("prioritize"))

	q, err := s.selectorUC.NextQuote(r.Context(), claims.UserID, priority)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOutOfQuotes):
			writeError(w, http.StatusNotFound, "No more quotes to guess")
		case errors.Is(err, domain.ErrInvalidUser):
			writeError(w, http.StatusUnauthorized, "Invalid user")
		default:
			s.serverError(w, r, err, "next quote failed")
		}
		return
	}
	writeJSON(w, http.StatusOK, nextQuoteResponse{ID: q.ID, Content: q.Content})
}

type quoteResponse struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
	Author  string `json:"author"`
}

func (s *Server) handleRelatedQuotes(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "quoteID"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid quote id")
		return
	}
	quotes, err := s.selectorUC.RelatedQuotes(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Quote not found")
			return
		}
		s.serverError(w, r, err, "related quotes failed")
		return
	}
	out := make([]quoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, quoteResponse{ID: q.ID, Content: q.Content, Author: q.Author})
	}
	writeJSON(w, http.StatusOK, out)
}

type guessRequest struct {
	QuoteID int64  `json:"quoteId"`
	Author  string `json:"author"`
}

type guessResponse struct {
	Correct  bool   `json:"correct"`
	NewScore *int   `json:"newScore"`
	Message  string `json:"message"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required. Please provide a valid Bearer token.")
		return
	}

	// Gate first: a user in cooldown never reaches the resolver.
	gate := s.cooldownUC.Check(r.Context(), claims.UserID)
	if !gate.Allowed {
		switch gate.Reason {
		case usecase.ReasonInvalidUser:
			writeError(w, http.StatusUnauthorized, "Invalid user")
		case usecase.ReasonInternalError:
			writeError(w, http.StatusInternalServerError, "Internal server error")
		default:
			writeJSON(w, http.StatusOK, guessResponse{Correct: false, Message: cooldownMessage})
		}
		return
	}

	var req guessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := s.guessUC.Resolve(r.Context(), claims.UserID, req.QuoteID, req.Author)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "Quote not found")
		case errors.Is(err, domain.ErrInvalidUser):
			writeError(w, http.StatusUnauthorized, "Invalid user")
		case errors.Is(err, domain.ErrQuoteSolved):
			writeError(w, http.StatusConflict, "Quote already solved")
		case errors.Is(err, domain.ErrInvalidArgument):
			writeError(w, http.StatusBadRequest, "invalid guess")
		default:
			s.serverError(w, r, err, "guess failed")
		}
		return
	}

	resp := guessResponse{Correct: res.Correct}
	if res.Correct {
		score := res.NewScore
		resp.NewScore = &score
		resp.Message = "Correct answer"
	} else {
		resp.Message = "Wrong answer, try again tomorrow"
	}
	writeJSON(w, http.StatusOK, resp)
}

// serverError logs the detail and hides it from the caller.
func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	logging.With(r.Context(), s.log).Error().Err(err).Msg(msg)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
