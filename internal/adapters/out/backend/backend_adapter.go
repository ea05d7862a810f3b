package backend

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/config"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/ports/out"
)

const requestIDHeader = "X-Request-ID"

// BackendAdapter talks to the portal REST API: consultation history and profiles.
type BackendAdapter struct {
	client *resty.Client
	logger out.LoggerPort
}

func NewBackendAdapter(cfg *config.Config, logger out.LoggerPort) *BackendAdapter {
	client := resty.New().
		SetBaseURL(cfg.Backend.URL).
		SetTimeout(cfg.Backend.Timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	return &BackendAdapter{
		client: client,
		logger: logger.WithModule("BackendAdapter"),
	}
}

// request carries the caller's bearer token and request id to the backend.
func (a *BackendAdapter) request(ctx context.Context) *resty.Request {
	req := a.client.R().SetContext(ctx)
	if token := domain.AuthTokenFrom(ctx); token != "" {
		req.SetAuthToken(token)
	}
	if id := domain.RequestIDFrom(ctx); id != "" {
		req.SetHeader(requestIDHeader, id)
	}
	return req
}

// check turns transport failures and non-2xx answers into a NetworkError.
func (a *BackendAdapter) check(op string, resp *resty.Response, err error, fields out.LogFields) error {
	if err != nil {
		fields["error"] = err.Error()
		a.logger.Error(op+"_failed", fields)
		return &domain.NetworkError{Op: op, Err: err}
	}
	if resp.IsError() || resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		fields["status"] = resp.StatusCode()
		a.logger.Error(op+"_failed", fields)
		return &domain.NetworkError{Op: op, Status: resp.StatusCode()}
	}
	return nil
}
