package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"nailstore-client/internal/logger"

	"go.uber.org/zap"
)

// ProcessorConfirmer confirms card payments directly against the external
// processor's REST API using the publishable key. It is the non-browser
// stand-in for the processor's hosted confirmation widget.
type processorConfirmer struct {
	baseURL        string
	publishableKey string
	httpClient     *http.Client
}

func NewProcessorConfirmer(baseURL, publishableKey string) CardConfirmer {
	if publishableKey == "" {
		logger.L().Warn("payment publishable key is empty")
	}

	return &processorConfirmer{
		baseURL:        strings.TrimRight(baseURL, "/"),
		publishableKey: publishableKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// intentIDFromSecret splits "pi_123_secret_abc" into its intent id.
func intentIDFromSecret(secret string) (string, error) {
	id, _, found := strings.Cut(secret, "_secret")
	if !found || id == "" {
		return "", errors.New("malformed client secret")
	}
	return id, nil
}

func (p *processorConfirmer) ConfirmCardPayment(ctx context.Context, clientSecret string, card Card) (*Confirmation, error) {
	intentID, err := intentIDFromSecret(clientSecret)
	if err != nil {
		return nil, err
	}

	log := logger.FromCtx(ctx).With(zap.String("intent_id", intentID))

	body := map[string]any{
		"client_secret": clientSecret,
		"payment_method_data": map[string]any{
			"type": "card",
			"card": map[string]string{"token": card.Token},
		},
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal confirm request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/payment_intents/%s/confirm", p.baseURL, intentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("build confirm request: %w", err)
	}
	req.SetBasicAuth(p.publishableKey, "")
	req.Header.Set("Content-Type", "application/json")

	log.Info("confirming card payment with processor")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		log.Error("processor request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read processor response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := processorErrorMessage(bodyBytes)
		log.Warn("processor declined confirmation",
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg),
		)
		return nil, errors.New(msg)
	}

	var result struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		return nil, fmt.Errorf("decode processor response: %w", err)
	}

	if result.Status != "succeeded" {
		log.Warn("payment did not succeed", zap.String("status", result.Status))
		return nil, fmt.Errorf("payment status %q", result.Status)
	}

	log.Info("card payment confirmed", zap.String("payment_id", result.ID))
	return &Confirmation{PaymentID: result.ID, Status: result.Status}, nil
}

func processorErrorMessage(body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	return "card confirmation failed"
}
