package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/mark-chris/threatmap/internal/threatmodel"
)

// serverState represents the server lifecycle state
type serverState int

const (
	stateNotInitialized serverState = iota
	stateInitializing
	stateInitialized
)

// maxLineBytes bounds a single JSON-RPC message on the stdio transport
const maxLineBytes = 1024 * 1024

// Server implements the Model Context Protocol for the threat model
// catalog
type Server struct {
	catalog            *threatmodel.Catalog
	logger             *logrus.Logger
	tokens             *threatmodel.TokenCounter
	tokenBudget        int
	state              serverState
	protocolVersion    string
	clientCapabilities map[string]interface{}
	mu                 sync.RWMutex
}

// NewServer creates a new MCP server backed by the given catalog. A nil
// logger disables logging.
func NewServer(catalog *threatmodel.Catalog, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	tokens, err := threatmodel.NewTokenCounter()
	if err != nil {
		logger.WithError(err).Warn("Token encoder unavailable, summaries will use approximate counts")
	}

	return &Server{
		catalog:     catalog,
		logger:      logger,
		tokens:      tokens,
		tokenBudget: threatmodel.DefaultTokenBudget,
		state:       stateNotInitialized,
	}
}

// setState sets the server state (thread-safe)
func (s *Server) setState(state serverState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// getState gets the server state (thread-safe)
func (s *Server) getState() serverState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// ServeStdio runs the MCP server over a newline-delimited JSON-RPC
// transport, reading messages from r and writing one response per line
// to w. Diagnostics go to the configured logger only; w carries nothing
// but protocol frames.
func (s *Server) ServeStdio(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		response := s.handleMessage([]byte(line))
		if response == nil {
			continue
		}

		data, err := json.Marshal(response)
		if err != nil {
			s.logger.WithError(err).Error("Failed to marshal response")
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read message stream: %w", err)
	}
	return nil
}

// handleMessage parses and dispatches one raw message. A nil return
// means no response is written (notifications).
func (s *Server) handleMessage(data []byte) interface{} {
	req, err := parseRequest(data)
	if err != nil {
		s.logger.WithError(err).Debug("Rejected message")
		if !json.Valid(data) {
			return createErrorResponse(ErrCodeParseError, ErrMsgParseError, err.Error(), nil)
		}
		return createErrorResponse(ErrCodeInvalidRequest, ErrMsgInvalidRequest, err.Error(), nil)
	}

	if req.isNotification() {
		s.handleNotification(req)
		return nil
	}

	return s.dispatch(req)
}

// handleNotification processes a message without an id
func (s *Server) handleNotification(req *JSONRPCRequest) {
	switch req.Method {
	case "notifications/initialized":
		if s.getState() == stateInitializing {
			s.setState(stateInitialized)
			s.logger.Info("MCP session initialized")
		}
	default:
		s.logger.WithField("method", req.Method).Debug("Ignoring notification")
	}
}

// dispatch routes a request to its handler and wraps the outcome in a
// JSON-RPC response
func (s *Server) dispatch(req *JSONRPCRequest) interface{} {
	s.logger.WithField("method", req.Method).Debug("Handling request")

	switch req.Method {
	case "initialize":
		result, err := handleInitialize(s, req.Params)
		if err != nil {
			return errorResponseFor(err, req.ID)
		}
		return createResponse(result, req.ID)
	case "ping":
		return createResponse(map[string]interface{}{}, req.ID)
	case "tools/list":
		result, err := handleToolsList(s, req.Params)
		if err != nil {
			return errorResponseFor(err, req.ID)
		}
		return createResponse(result, req.ID)
	case "tools/call":
		result, err := handleToolsCall(s, req.Params)
		if err != nil {
			return errorResponseFor(err, req.ID)
		}
		return createResponse(result, req.ID)
	default:
		return createErrorResponse(ErrCodeMethodNotFound, ErrMsgMethodNotFound, req.Method, req.ID)
	}
}

// analyzeDocument runs the identification pipeline against an inline
// architecture document and renders the result at the requested
// verbosity
func (s *Server) analyzeDocument(document, verbosity string) (string, error) {
	app, err := threatmodel.ParseArchitecture([]byte(document))
	if err != nil {
		return "", err
	}

	surfaces := threatmodel.IdentifySurfaces(app, s.catalog.Vulnerabilities())
	suggestions := threatmodel.SuggestControls(surfaces, s.catalog.Controls())
	report := threatmodel.BuildReport(app, s.catalog, surfaces, suggestions, "inline", "")

	if verbosity == "full" {
		return threatmodel.FormatReport(report, threatmodel.FormatJSON)
	}
	return threatmodel.BuildAgentReport(report, s.tokens, s.tokenBudget), nil
}

// renderVectorList lists catalog attack vectors, optionally restricted
// to those targeting one component type
func (s *Server) renderVectorList(target string) string {
	var sb strings.Builder
	count := 0

	for _, vector := range s.catalog.Vectors() {
		if target != "" && !vectorTargets(vector, target) {
			continue
		}
		count++
		fmt.Fprintf(&sb, "- %s", vector.Name)
		if len(vector.TargetComponents) > 0 {
			fmt.Fprintf(&sb, " [targets: %s]", strings.Join(vector.TargetComponents, ", "))
		}
		if vector.Description != "" {
			fmt.Fprintf(&sb, ": %s", vector.Description)
		}
		sb.WriteString("\n")
	}

	if count == 0 {
		if target != "" {
			return fmt.Sprintf("No attack vectors target component type '%s'.", target)
		}
		return "No attack vectors in the catalog."
	}
	return fmt.Sprintf("%d attack vector(s):\n%s", count, strings.TrimRight(sb.String(), "\n"))
}

func vectorTargets(vector *threatmodel.AttackVector, target string) bool {
	for _, t := range vector.TargetComponents {
		if t == target {
			return true
		}
	}
	return false
}
