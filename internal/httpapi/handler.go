// Package httpapi maps HTTP requests onto the data and transaction
// services.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"runtime"
	"time"

	"github.com/gorilla/mux"

	"github.com/chaingate-io/chaingate/internal/domain/transfer"
	"github.com/chaingate-io/chaingate/internal/metrics"
	"github.com/chaingate-io/chaingate/internal/qos"
	"github.com/chaingate-io/chaingate/internal/services/data"
	"github.com/chaingate-io/chaingate/internal/services/transactions"
	"github.com/chaingate-io/chaingate/pkg/logger"
)

// HealthInfo carries the static facts reported by the health endpoint.
type HealthInfo struct {
	BlockchainNetwork string
	GCPBucket         string
	StartedAt         time.Time
}

// Options bundles the handler's dependencies.
type Options struct {
	Data         *data.Service
	Transactions *transactions.Service
	QoS          *qos.Recorder
	Health       HealthInfo
	CORSOrigins  []string
	Log          *logger.Logger
}

type handler struct {
	data         *data.Service
	transactions *transactions.Service
	qos          *qos.Recorder
	health       HealthInfo
	log          *logger.Logger
}

// New returns the router exposing the REST API.
func New(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.NewDefault("httpapi")
	}

	h := &handler{
		data:         opts.Data,
		transactions: opts.Transactions,
		qos:          opts.QoS,
		health:       opts.Health,
		log:          log,
	}

	r := mux.NewRouter()
	r.Use(NewCORS(opts.CORSOrigins).Handler)
	r.Use(LoggingMiddleware(log))
	r.Use(MetricsMiddleware())
	if opts.QoS != nil {
		r.Use(QoSMiddleware(opts.QoS))
	}

	r.HandleFunc("/api/data", h.getData).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/api/transaction", h.postTransaction).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/api/metrics", h.getQoS).Methods(http.MethodGet)
	r.HandleFunc("/health", h.getHealth).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	return r
}

func (h *handler) getData(w http.ResponseWriter, r *http.Request) {
	res, err := h.data.Fetch(r.Context())
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Data not found in storage")
			return
		}
		h.log.WithError(err).Error("data fetch failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// transactionResponse is the success payload of POST /api/transaction.
type transactionResponse struct {
	Success         bool   `json:"success"`
	TransactionHash string `json:"transactionHash"`
	BlockNumber     uint64 `json:"blockNumber"`
	GCSFile         string `json:"gcsFile"`
}

func (h *handler) postTransaction(w http.ResponseWriter, r *http.Request) {
	var req transfer.Request
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.transactions.Submit(r.Context(), req)
	if err == nil {
		writeJSON(w, http.StatusOK, transactionResponse{
			Success:         true,
			TransactionHash: res.TransactionHash,
			BlockNumber:     res.BlockNumber,
			GCSFile:         res.ObjectName,
		})
		return
	}

	if errors.Is(err, transfer.ErrMissingFields) {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if transactions.IsClientError(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var pe *transactions.PersistenceError
	if errors.As(err, &pe) {
		// The transfer reached the chain; surface its coordinates even
		// though the receipt write failed.
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":           "Transaction failed",
			"details":         pe.Error(),
			"transactionHash": res.TransactionHash,
			"blockNumber":     res.BlockNumber,
		})
		return
	}

	h.log.WithError(err).Error("transfer submission failed")
	writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
		"error":   "Transaction failed",
		"details": err.Error(),
	})
}

func (h *handler) getQoS(w http.ResponseWriter, r *http.Request) {
	samples := []qos.Sample{}
	if h.qos != nil {
		samples = h.qos.Samples()
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"samples": samples})
}

func (h *handler) getHealth(w http.ResponseWriter, r *http.Request) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(h.health.StartedAt).Seconds(),
		"memoryUsage": map[string]uint64{
			"alloc":      ms.Alloc,
			"totalAlloc": ms.TotalAlloc,
			"sys":        ms.Sys,
			"heapInuse":  ms.HeapInuse,
		},
		"blockchainNetwork": h.health.BlockchainNetwork,
		"gcpBucket":         h.health.GCPBucket,
	})
}

func decodeJSON(body io.ReadCloser, dst interface{}) error {
	defer body.Close()
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
