package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	settlement "github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement"
	walletledger "github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/wallet-ledger"
	resultsengine "github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/results-engine"
	votingengine "github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/HarjjotSinghh/openwave-sub002/internal/platform/httpserver/docs"
)

type Server struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	addr       string
	wallet     walletledger.Module
	voting     votingengine.Module
	results    resultsengine.Module
	settlement settlement.Module
}

func New(
	wallet walletledger.Module,
	voting votingengine.Module,
	results resultsengine.Module,
	settlementModule settlement.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:        http.NewServeMux(),
		logger:     logger,
		addr:       addr,
		wallet:     wallet,
		voting:     voting,
		results:    results,
		settlement: settlementModule,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/wallet/v1/accounts", s.handleCreateAccount)
	s.mux.HandleFunc("GET /api/wallet/v1/accounts/{account_id}/balance", s.handleGetBalance)
	s.mux.HandleFunc("POST /api/wallet/v1/accounts/{account_id}/credit", s.handleCredit)
	s.mux.HandleFunc("POST /api/wallet/v1/accounts/{account_id}/debit", s.handleDebit)
	s.mux.HandleFunc("GET /api/wallet/v1/accounts/{account_id}/transactions", s.handleListTransactions)

	s.mux.HandleFunc("POST /api/voting/v1/votes", s.handleCastVote)
	s.mux.HandleFunc("GET /api/voting/v1/projects/{project_id}/votes", s.handleListProjectVotes)
	s.mux.HandleFunc("GET /api/voting/v1/projects/{project_id}/tally", s.handleProjectTally)
	s.mux.HandleFunc("GET /api/voting/v1/hackathons/{hackathon_id}/tallies", s.handleHackathonTallies)

	s.mux.HandleFunc("POST /api/results/v1/projects", s.handleRegisterProject)
	s.mux.HandleFunc("POST /api/results/v1/hackathons/{hackathon_id}/compute", s.handleComputeResults)
	s.mux.HandleFunc("GET /api/results/v1/hackathons/{hackathon_id}/results", s.handleHackathonResults)
	s.mux.HandleFunc("GET /api/results/v1/projects/{project_id}/result", s.handleProjectResult)

	s.mux.HandleFunc("POST /api/settlement/v1/settle", s.handleSettle)
	s.mux.HandleFunc("POST /api/settlement/v1/projects/{project_id}/confirm", s.handleConfirmPayment)
	s.mux.HandleFunc("GET /api/settlement/v1/projects/{project_id}/payment", s.handleGetSplitPayment)
	s.mux.HandleFunc("GET /api/settlement/v1/hackathons/{hackathon_id}/payments", s.handleListSplitPayments)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
