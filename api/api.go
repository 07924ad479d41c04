// Package api exposes the logger's query surface over HTTP: looking up
// transfers by EVM address or ICP principal, listing registered minters,
// and listing supported twin-token pairs, plus two POST routes that
// pre-register a client-observed deposit or withdrawal. It mirrors
// the shape of chaindatafetcher's PublicChainDataFetcherAPI — a thin
// struct wrapping the component it queries, with one method per RPC — but
// over net/http + encoding/json instead of the node's internal RPC
// registration, since this service has no separate RPC module to plug
// into.
package api

import (
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"

	"github.com/Appic-Solutions/trsansaction-logger/chainaddr"
	"github.com/Appic-Solutions/trsansaction-logger/persist"
	"github.com/Appic-Solutions/trsansaction-logger/principal"
	"github.com/Appic-Solutions/trsansaction-logger/store"
)

var logger = log.New("module", "api")

// Server serves the query and pre-register API backed by a persistence cell.
type Server struct {
	cell *persist.Cell
	mux  *http.ServeMux
}

// New builds a Server querying cell. Call Handler to get the http.Handler
// to mount.
func New(cell *persist.Cell) *Server {
	s := &Server{cell: cell, mux: http.NewServeMux()}
	s.mux.HandleFunc("/transactions/by-address", s.handleByAddress)
	s.mux.HandleFunc("/transactions/by-principal", s.handleByPrincipal)
	s.mux.HandleFunc("/minters", s.handleMinters)
	s.mux.HandleFunc("/twin-token-pairs", s.handleTwinTokenPairs)
	s.mux.HandleFunc("/transactions/add-evm-to-icp", s.handleAddEvmToIcp)
	s.mux.HandleFunc("/transactions/add-icp-to-evm", s.handleAddIcpToEvm)
	return s
}

// Handler returns the http.Handler to mount under an *http.Server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleByAddress(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("address")
	if !common.IsHexAddress(raw) {
		http.Error(w, "invalid address", http.StatusBadRequest)
		return
	}
	addr := common.HexToAddress(raw)

	state, err := s.cell.Read()
	if err != nil {
		s.writeStateError(w, err)
		return
	}
	writeJSON(w, state.GetTransactionForAddress(addr))
}

func (s *Server) handleByPrincipal(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("principal")
	p, err := principal.Parse(raw)
	if err != nil {
		http.Error(w, "invalid principal", http.StatusBadRequest)
		return
	}

	state, err := s.cell.Read()
	if err != nil {
		s.writeStateError(w, err)
		return
	}
	writeJSON(w, state.GetTransactionForPrincipal(p))
}

func (s *Server) handleMinters(w http.ResponseWriter, r *http.Request) {
	state, err := s.cell.Read()
	if err != nil {
		s.writeStateError(w, err)
		return
	}
	writeJSON(w, state.GetMinters())
}

func (s *Server) handleTwinTokenPairs(w http.ResponseWriter, r *http.Request) {
	state, err := s.cell.Read()
	if err != nil {
		s.writeStateError(w, err)
		return
	}
	writeJSON(w, state.GetSupportedTwinTokenPairs())
}

// addEvmToIcpRequest is the body of a client-facing pre-register call for a
// deposit the client has seen on-chain but the scheduler hasn't scraped
// yet, mirroring the Rust source's add_evm_to_icp_tx endpoint.
type addEvmToIcpRequest struct {
	TransactionHash string `json:"transaction_hash"`
	ChainID         uint64 `json:"chain_id"`
	FromAddress     string `json:"from_address"`
	Value           string `json:"value"`
	Principal       string `json:"principal"`
	Subaccount      string `json:"subaccount,omitempty"`
	Oprator         string `json:"oprator"`
}

func (s *Server) handleAddEvmToIcp(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req addEvmToIcpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	txHash, err := chainaddr.ParseHash(req.TransactionHash)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	fromAddr, err := chainaddr.ParseAddress(req.FromAddress)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	value, ok := new(big.Int).SetString(req.Value, 10)
	if !ok {
		http.Error(w, "invalid value", http.StatusBadRequest)
		return
	}
	p, err := principal.Parse(req.Principal)
	if err != nil {
		http.Error(w, "invalid principal", http.StatusBadRequest)
		return
	}
	subaccount, err := parseSubaccount(req.Subaccount)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	oprator, err := store.ParseOprator(req.Oprator)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := store.EvmToIcpTxIdentifier{TransactionHash: txHash, ChainID: store.ChainID(req.ChainID)}
	err = s.cell.Mutate(func(mutState *store.State) error {
		mutState.PreRegisterEvmToIcp(id, store.PreRegisterEvmToIcpParams{
			TransactionHash: txHash,
			FromAddress:     fromAddr,
			Value:           value,
			Principal:       p,
			Subaccount:      subaccount,
			ChainID:         store.ChainID(req.ChainID),
			Oprator:         oprator,
			Timestamp:       uint64(time.Now().Unix()),
		})
		return nil
	})
	if err != nil {
		s.writeStateError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// addIcpToEvmRequest is the body of a client-facing pre-register call for a
// withdrawal, mirroring add_icp_to_evm_tx.
type addIcpToEvmRequest struct {
	NativeLedgerBurnIndex uint64 `json:"native_ledger_burn_index"`
	ChainID               uint64 `json:"chain_id"`
	WithdrawalAmount      string `json:"withdrawal_amount"`
	Destination           string `json:"destination"`
	From                  string `json:"from"`
	FromSubaccount        string `json:"from_subaccount,omitempty"`
	Oprator               string `json:"oprator"`
}

func (s *Server) handleAddIcpToEvm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req addIcpToEvmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	destination, err := chainaddr.ParseAddress(req.Destination)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	withdrawalAmount, ok := new(big.Int).SetString(req.WithdrawalAmount, 10)
	if !ok {
		http.Error(w, "invalid withdrawal_amount", http.StatusBadRequest)
		return
	}
	from, err := principal.Parse(req.From)
	if err != nil {
		http.Error(w, "invalid from principal", http.StatusBadRequest)
		return
	}
	fromSubaccount, err := parseSubaccount(req.FromSubaccount)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	oprator, err := store.ParseOprator(req.Oprator)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := store.IcpToEvmIdentifier{NativeLedgerBurnIndex: req.NativeLedgerBurnIndex, ChainID: store.ChainID(req.ChainID)}
	err = s.cell.Mutate(func(mutState *store.State) error {
		mutState.PreRegisterIcpToEvm(id, store.PreRegisterIcpToEvmParams{
			WithdrawalAmount: withdrawalAmount,
			Destination:      destination,
			From:             from,
			FromSubaccount:   fromSubaccount,
			ChainID:          store.ChainID(req.ChainID),
			Oprator:          oprator,
			Timestamp:        uint64(time.Now().Unix()),
		})
		return nil
	})
	if err != nil {
		s.writeStateError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// parseSubaccount parses an optional 32-byte hex subaccount, returning nil
// for an empty string (the default subaccount).
func parseSubaccount(s string) (*[32]byte, error) {
	if s == "" {
		return nil, nil
	}
	h, err := chainaddr.ParseHash(s)
	if err != nil {
		return nil, fmt.Errorf("invalid subaccount: %w", err)
	}
	sub := [32]byte(h)
	return &sub, nil
}

func (s *Server) writeStateError(w http.ResponseWriter, err error) {
	logger.Error("query against persistence cell failed", "err", err)
	http.Error(w, "state unavailable", http.StatusServiceUnavailable)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "err", err)
	}
}
