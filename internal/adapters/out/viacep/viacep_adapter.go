package viacep

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/config"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/ports/out"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/utils"
)

type ViaCepAdapter struct {
	client *resty.Client
	logger out.LoggerPort
}

// viaCepResponse carries "erro": true for a well formed CEP that does not exist.
type viaCepResponse struct {
	Cep        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       flag   `json:"erro"`
}

// flag accepts both true and "true", ViaCEP has sent either.
type flag bool

func (f *flag) UnmarshalJSON(data []byte) error {
	s := string(data)
	*f = flag(s == "true" || s == `"true"`)
	return nil
}

func NewViaCepAdapter(cfg *config.Config, logger out.LoggerPort) *ViaCepAdapter {
	return &ViaCepAdapter{
		client: resty.New().
			SetBaseURL(cfg.ViaCep.URL).
			SetTimeout(cfg.ViaCep.Timeout).
			SetRetryCount(0),
		logger: logger.WithModule("ViaCepAdapter"),
	}
}

func (a *ViaCepAdapter) LookupPostalCode(ctx context.Context, cep string) (*domain.PostalAddress, error) {
	digits := utils.OnlyDigits(cep)
	if len(digits) != 8 {
		return nil, domain.ErrPostalCodeNotFound
	}

	var payload viaCepResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetResult(&payload).
		Get(fmt.Sprintf("/ws/%s/json/", digits))
	if err != nil {
		a.logger.Error("viacep.lookup_failed", out.LogFields{
			"cep":   digits,
			"error": err.Error(),
		})
		return nil, &domain.NetworkError{Op: "viacep.lookup", Err: err}
	}
	if resp.IsError() {
		a.logger.Error("viacep.lookup_failed", out.LogFields{
			"cep":    digits,
			"status": resp.StatusCode(),
		})
		// ViaCEP answers 400 for malformed codes
		if resp.StatusCode() == http.StatusBadRequest {
			return nil, domain.ErrPostalCodeNotFound
		}
		return nil, &domain.NetworkError{Op: "viacep.lookup", Status: resp.StatusCode()}
	}

	if bool(payload.Erro) {
		a.logger.Debug("viacep.not_found", out.LogFields{
			"cep": digits,
		})
		return nil, domain.ErrPostalCodeNotFound
	}

	return &domain.PostalAddress{
		Cep:    utils.FormatCep(pick(payload.Cep, digits)),
		Rua:    payload.Logradouro,
		Bairro: payload.Bairro,
		Cidade: payload.Localidade,
		Estado: payload.UF,
	}, nil
}

func pick(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
