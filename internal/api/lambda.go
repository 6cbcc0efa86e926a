package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"ArticleCrawler/internal/params"
)

// LambdaHandler serves the crawl endpoint behind API Gateway.
type LambdaHandler struct {
	server *Server
}

// NewLambdaHandler reuses the server's parameter and error policy.
func NewLambdaHandler(server *Server) *LambdaHandler {
	return &LambdaHandler{server: server}
}

// Handle processes one proxy request. Only GET and POST are accepted.
func (h *LambdaHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	switch req.HTTPMethod {
	case http.MethodGet, http.MethodPost, "":
	default:
		return jsonResponse(http.StatusMethodNotAllowed, ErrorResponse{
			Error:  "method_not_allowed",
			Detail: req.HTTPMethod + " is not supported",
		})
	}

	q := req.QueryStringParameters
	raw := params.RawParams{
		CategoryURL: q["category_url"],
		Date:        q["date"],
		Limit:       q["limit"],
		Sleep:       q["sleep"],
	}
	if req.HTTPMethod == http.MethodPost {
		body := []byte(req.Body)
		if req.IsBase64Encoded {
			if decoded, err := base64.StdEncoding.DecodeString(req.Body); err == nil {
				body = decoded
			}
		}
		raw = params.MergeJSON(raw, body)
	}

	status, payload := h.server.run(ctx, raw)
	return jsonResponse(status, payload)
}

func jsonResponse(status int, payload any) (events.APIGatewayProxyResponse, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json; charset=utf-8"},
		Body:       buf.String(),
	}, nil
}
