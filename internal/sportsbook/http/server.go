package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/radieske/league-sportsbook/internal/sportsbook/dto"
	"github.com/radieske/league-sportsbook/internal/sportsbook/store"
	"github.com/radieske/league-sportsbook/internal/tournament"
)

// Server expõe o torneio e a banca via REST; /ws é delegado ao hub
type Server struct {
	log          *zap.Logger
	store        *store.Store
	defaultStake int64
	ws           http.HandlerFunc
}

func NewServer(log *zap.Logger, st *store.Store, defaultStake int64, ws http.HandlerFunc) *Server {
	if defaultStake <= 0 {
		defaultStake = 100
	}
	return &Server{log: log, store: st, defaultStake: defaultStake, ws: ws}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	if s.ws != nil {
		r.Get("/ws", s.ws) // fora do access log: conexão longa
	}

	r.Group(func(r chi.Router) {
		r.Use(requestLogger(s.log))

		r.Route("/participants", func(r chi.Router) {
			r.Post("/", s.register)
			r.Get("/", s.leaderboard)
			r.Get("/{name}/wagers", s.wagerHistory)
		})

		r.Get("/fixtures", s.pendingFixtures)
		r.Get("/groups", s.allStandings)
		r.Get("/groups/{group}/standings", s.groupStandings)
		r.Get("/tournament", s.summary)

		r.Post("/wagers", s.placeWager)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/results", s.recordResult)
			r.Post("/advance", s.advance)
			r.Post("/reset", s.reset)
		})
	})
	return r
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequest(w, err)
		return
	}
	p, err := s.store.Register(r.Context(), tournament.ParticipantID(req.Name))
	if err != nil {
		s.writeError(w, r, err, p)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) leaderboard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Leaderboard())
}

func (s *Server) wagerHistory(w http.ResponseWriter, r *http.Request) {
	h, err := s.store.Wagers(tournament.ParticipantID(chi.URLParam(r, "name")))
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, h)
}

// pendingFixtures aceita ?limit=N (N > 0); sem limit lista todos
func (s *Server) pendingFixtures(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, s.store.PendingFixtures(limit))
}

func (s *Server) allStandings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.AllStandings())
}

func (s *Server) groupStandings(w http.ResponseWriter, r *http.Request) {
	g := tournament.GroupName(chi.URLParam(r, "group"))
	rows, err := s.store.Standings(g)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, store.GroupStandings{Group: g, Rows: rows})
}

func (s *Server) summary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Summary())
}

func (s *Server) placeWager(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceWagerRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequest(w, err)
		return
	}
	stake := s.defaultStake
	if req.Stake != nil {
		stake = *req.Stake
	}

	wager, err := s.store.PlaceWager(r.Context(),
		tournament.ParticipantID(strings.TrimSpace(req.Participant)),
		fixtureKey(req.Home, req.Away, req.Phase),
		tournament.Prediction(strings.ToLower(strings.TrimSpace(req.Prediction))),
		stake,
	)
	if err != nil {
		s.writeError(w, r, err, wager)
		return
	}
	writeJSON(w, http.StatusCreated, wager)
}

func (s *Server) recordResult(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordResultRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if req.HomeGoals == nil || req.AwayGoals == nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "home_goals and away_goals are required"})
		return
	}

	res, err := s.store.RecordResult(r.Context(), fixtureKey(req.Home, req.Away, req.Phase), *req.HomeGoals, *req.AwayGoals)
	if err != nil {
		s.writeError(w, r, err, res)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) advance(w http.ResponseWriter, r *http.Request) {
	phase, qualifiers, err := s.store.Advance(r.Context())
	names := make([]string, len(qualifiers))
	for i, q := range qualifiers {
		names[i] = string(q)
	}
	resp := dto.AdvanceResponse{Phase: string(phase), Qualifiers: names}
	if err != nil {
		s.writeError(w, r, err, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) reset(w http.ResponseWriter, r *http.Request) {
	resp := dto.ResetResponse{Status: "reset"}
	if err := s.store.Reset(r.Context()); err != nil {
		s.writeError(w, r, err, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func fixtureKey(home, away, phase string) tournament.FixtureKey {
	p := tournament.Phase(strings.TrimSpace(phase))
	if p == "" {
		p = tournament.PhaseGroups
	}
	return tournament.FixtureKey{
		Home:  tournament.TeamID(strings.TrimSpace(home)),
		Away:  tournament.TeamID(strings.TrimSpace(away)),
		Phase: p,
	}
}
