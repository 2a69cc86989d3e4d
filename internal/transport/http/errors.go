package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ryu-ryuk/re-wear/internal/domain"
)

const (
	codeNotFound           = "not_found"
	codeMethodNotAllowed   = "method_not_allowed"
	codeInvalidRequestBody = "invalid_request_body"
	codeMissingField       = "missing_required_field"
	codeUnauthorized       = "unauthorized"
	codeForbidden          = "forbidden"
	codeTransactionFailed  = "transaction_failed"
	codeInternalError      = "internal_error"
)

// errorCodes gives each domain error a machine-checkable code.
var errorCodes = map[error]string{
	domain.ErrSelfSwap:            "self_swap",
	domain.ErrOfferedItemNotOwned: "offered_item_not_owned",
	domain.ErrItemUnavailable:     "item_unavailable",
	domain.ErrItemNotApproved:     "item_not_approved",
	domain.ErrDuplicateSwap:       "duplicate_swap_request",
	domain.ErrSelfRedeem:          "self_redeem",
	domain.ErrInsufficientPoints:  "insufficient_points",
	domain.ErrInvalidID:           "invalid_id",
	domain.ErrNotItemOwner:        codeForbidden,
	domain.ErrNotRequester:        codeForbidden,
	domain.ErrNotParticipant:      codeForbidden,
	domain.ErrSwapNotPending:      "swap_not_pending",
	domain.ErrSwapNotAccepted:     "swap_not_accepted",
	domain.ErrItemConflict:        "item_conflict",
	domain.ErrSwapNotFound:        "swap_not_found",
	domain.ErrItemNotFound:        "item_not_found",
	domain.ErrUserNotFound:        "user_not_found",
	domain.ErrTransactionFailed:   codeTransactionFailed,
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps a service error onto the HTTP surface by its kind.
// Transaction and unknown errors are logged here and reported without
// storage-layer detail.
func writeDomainError(w http.ResponseWriter, err error) {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		writeError(w, http.StatusBadRequest, errorCode(err), err.Error())
	case domain.KindAuthorization:
		writeError(w, http.StatusForbidden, errorCode(err), err.Error())
	case domain.KindNotFound:
		writeError(w, http.StatusNotFound, errorCode(err), err.Error())
	case domain.KindState:
		writeError(w, http.StatusConflict, errorCode(err), err.Error())
	case domain.KindTransaction:
		slog.Error("transaction failed", "error", err)
		writeError(w, http.StatusInternalServerError, codeTransactionFailed, domain.ErrTransactionFailed.Error())
	default:
		slog.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func errorCode(err error) string {
	for sentinel, code := range errorCodes {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return codeInternalError
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
