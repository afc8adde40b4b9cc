package http

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
)

const apiPrefix = "/api/"

// newRequestValidator rejects API requests that do not match the OpenAPI
// document before a handler sees them. Paths outside the API and routes the
// document does not know are passed through.
func newRequestValidator(doc *openapi3.T, logger *slog.Logger) (echo.MiddlewareFunc, error) {
	// Routes are matched on the bare request path.
	doc.Servers = nil

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build api router: %w", err)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if !strings.HasPrefix(req.URL.Path, apiPrefix) {
				return next(c)
			}

			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    &openapi3filter.Options{},
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				logger.DebugContext(req.Context(), "request rejected",
					"method", req.Method, "path", req.URL.Path, "error", err)
				return badRequest(c, validationMessage(err))
			}

			return next(c)
		}
	}, nil
}

func validationMessage(err error) string {
	detail := ""
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		detail = ": " + schemaErr.Reason
	}

	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		switch {
		case reqErr.Parameter != nil:
			return fmt.Sprintf("Invalid parameter %s%s", reqErr.Parameter.Name, detail)
		case reqErr.RequestBody != nil:
			if detail == "" && reqErr.Reason != "" {
				detail = ": " + reqErr.Reason
			}
			return "Invalid request body" + detail
		}
	}

	return "Invalid request" + detail
}
