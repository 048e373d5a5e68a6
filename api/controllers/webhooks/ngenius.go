package webhooks

import (
	"context"
	"io"
	"net/http"

	"github.com/AskiaMohamed22/ngenius-backend/api/responses"
	pkgerrors "github.com/AskiaMohamed22/ngenius-backend/pkg/errors"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/logger"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/metrics"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/types"
)

const signatureHeader = "X-Ngenius-Signature"

type NgeniusWebhookService interface {
	HandleNotification(ctx context.Context, raw []byte) error
}

type signatureVerifier interface {
	Verify(ctx context.Context, payload []byte, header string) error
}

type replayGuard interface {
	CheckAndMark(ctx context.Context, payload []byte) (bool, error)
	Forget(ctx context.Context, payload []byte) error
}

// NgeniusWebhook receives payment-state notifications from the gateway. A
// redelivered payload is acknowledged without reprocessing; a processing
// failure clears the replay mark so the gateway's retry gets through.
func NgeniusWebhook(svc NgeniusWebhookService, verifier signatureVerifier, guard replayGuard, m *metrics.WebhookMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "webhook service unavailable"))
			return
		}
		if verifier == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "signature verifier unavailable"))
			return
		}
		if guard == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "replay guard unavailable"))
			return
		}

		payload, err := io.ReadAll(r.Body)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read request body"))
			return
		}

		if err := verifier.Verify(ctx, payload, r.Header.Get(signatureHeader)); err != nil {
			m.IncRejected("signature")
			responses.WriteError(ctx, logg, w, err)
			return
		}

		alreadySeen, err := guard.CheckAndMark(ctx, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check replay guard"))
			return
		}
		if alreadySeen {
			m.IncDuplicate()
			if logg != nil {
				logg.Info(ctx, "duplicate notification acknowledged")
			}
			responses.WriteSuccess(w, types.AckResponse{Success: true})
			return
		}

		if err := svc.HandleNotification(ctx, payload); err != nil {
			_ = guard.Forget(ctx, payload)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, types.AckResponse{Success: true})
	}
}
