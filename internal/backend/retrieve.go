package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	terrors "trigger/cli/internal/errors"
	"trigger/cli/internal/logging"
	"trigger/cli/internal/progress"
	"trigger/cli/internal/query"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenHeader carries the session token on data requests.
const TokenHeader = "token"

type response struct {
	status int
	body   []byte
}

// Retrieve sends GET {base}/{table}/ once and decodes the JSON body.
// Numbers decode as json.Number so large values keep their precision.
func (c *Client) Retrieve(ctx context.Context, token, table string, params query.Params) (query.Result, error) {
	rawQuery := params.Encode()
	log := c.log.With(
		zap.String("request_id", uuid.NewString()),
		zap.String("table", table),
		zap.String("params", logging.Mask(params.String())),
	)
	log.Debug("retrieve")
	start := time.Now()

	endpoint := c.baseURL + "/" + url.PathEscape(table) + "/"
	resp, err := progress.Run(c.out, "Fetching "+table, c.progress, func() (response, error) {
		status, body, err := c.t.Get(ctx, endpoint, rawQuery, map[string]string{TokenHeader: token})
		return response{status: status, body: body}, err
	})
	if err != nil {
		log.Debug("transport error", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return nil, terrors.Wrap(terrors.TransportFailed, "cannot reach "+table+" endpoint", err)
	}
	log.Debug("response", zap.Int("status", resp.status), zap.Int("bytes", len(resp.body)),
		zap.Duration("elapsed", time.Since(start)))

	if resp.status != http.StatusOK {
		return nil, terrors.Wrap(terrors.RequestFailed, "retrieval from "+table+" failed",
			&terrors.RequestError{StatusCode: resp.status, Body: string(resp.body)})
	}

	dec := json.NewDecoder(bytes.NewReader(resp.body))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, terrors.Wrap(terrors.UnexpectedResponse, "response from "+table+" is not JSON", err)
	}
	return out, nil
}
