package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/justinbrick/capstone-project-shipping-api/internal/domain"
	"github.com/justinbrick/capstone-project-shipping-api/internal/ports"
)

// DefaultPhotonBaseURL is the public Photon instance. It is rate-limited;
// production deployments should point at their own instance and keep the
// Redis cache in front of this client.
const DefaultPhotonBaseURL = "https://photon.komoot.io"

// PhotonGeocoder resolves addresses through the Photon geocoding API.
type PhotonGeocoder struct {
	baseURL string
	session *http.Client
}

func NewPhotonGeocoder(baseURL string) *PhotonGeocoder {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultPhotonBaseURL
	}
	return &PhotonGeocoder{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: &http.Client{Timeout: 10 * time.Second},
	}
}

type photonResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Geocode resolves one address to coordinates. An address Photon has no
// result for maps to ports.ErrAddressNotFound.
func (g *PhotonGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	endpoint := g.baseURL + "/api"

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		q := req.URL.Query()
		q.Set("q", address)
		q.Set("limit", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("photon geocode %q: %w", address, err)
	}
	defer resp.Body.Close()

	var decoded photonResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("photon geocode %q: decode response: %w", address, err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, fmt.Errorf("photon geocode %q: %w", address, ports.ErrAddressNotFound)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, fmt.Errorf("photon geocode %q: invalid coordinate format", address)
	}

	// GeoJSON order is [lon, lat].
	return domain.Coordinates{Lat: coords[1], Lon: coords[0]}, nil
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

func (g *PhotonGeocoder) do(req *http.Request) (*http.Response, error) {
	resp, err := g.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429/5xx responses)
// using exponential backoff while respecting context cancellation.
func (g *PhotonGeocoder) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	const maxAttempts = 4
	backoff := 200 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := g.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}
