package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/scanhook/pkg/domain/interfaces"
	"github.com/secmon-lab/scanhook/pkg/domain/model"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
	"github.com/secmon-lab/scanhook/pkg/utils/safe"
)

// Request body limit of subscription calls.
const maxRequestBody = 64 << 10

type subscriptionRequest struct {
	SessionID  types.SessionID `json:"sid"`
	Ref        string          `json:"ref"`
	Repository string          `json:"repository"`
}

func decodeSubscribeInput(w http.ResponseWriter, r *http.Request) (*model.SubscribeInput, error) {
	defer safe.CloseBody(r.Body)

	var req subscriptionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		return nil, goerr.Wrap(types.ErrValidationFailed, "invalid request body", goerr.V("cause", err.Error()))
	}

	return &model.SubscribeInput{
		SessionID:   req.SessionID,
		Channel:     channelOf(r),
		Environment: types.Environment(chi.URLParam(r, "environment")),
		Ref:         req.Ref,
		Repository:  req.Repository,
	}, nil
}

func handleSubscribe(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := decodeSubscribeInput(w, r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		output, err := uc.Subscribe(r.Context(), input)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, output)
	}
}

func handleUnsubscribe(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := decodeSubscribeInput(w, r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		n, err := uc.Unsubscribe(r.Context(), input)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]int{"removed": n})
	}
}

func sessionOf(r *http.Request) types.SessionID {
	return types.SessionID(r.URL.Query().Get("sid"))
}

func handleListSubscriptions(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		env := types.Environment(chi.URLParam(r, "environment"))
		subs, err := uc.ListSubscriptions(r.Context(), sessionOf(r), channelOf(r), env)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if subs == nil {
			subs = []*model.Subscription{}
		}

		writeJSON(w, http.StatusOK, map[string]any{"subscriptions": subs})
	}
}

func handleGetScan(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.ScanID(chi.URLParam(r, "scan"))
		scan, err := uc.GetScan(r.Context(), sessionOf(r), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if scan == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "scan not found"})
			return
		}

		writeJSON(w, http.StatusOK, scan)
	}
}
