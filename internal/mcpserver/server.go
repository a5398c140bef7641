package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cerebroai/docapi/internal/rag"
	"github.com/cerebroai/docapi/pkg/logger_i"
)

const Version = "0.1.0"

// Server exposes the query service as an MCP tool so agent clients can
// search ingested documents over stdio.
type Server struct {
	query  rag.Service
	server *mcp.Server
	logger *logger_i.Logger
}

func NewServer(queryService rag.Service) *Server {
	impl := &mcp.Implementation{
		Name:    "docapi",
		Version: Version,
	}

	s := &Server{
		query:  queryService,
		server: mcp.NewServer(impl, nil),
		logger: logger_i.NewLogger("MCPServer"),
	}
	s.registerTools()
	return s
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("MCP server starting on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

type QueryInput struct {
	Query          string `json:"query" jsonschema:"the question to answer from ingested documents"`
	OwnerId        string `json:"owner_id" jsonschema:"owner whose documents are searched"`
	ConversationId string `json:"conversation_id,omitempty" jsonschema:"optional conversation to continue"`
}

type QueryOutput struct {
	Answer         string           `json:"answer"`
	Citations      []CitationOutput `json:"citations"`
	ConversationId string           `json:"conversation_id"`
}

type CitationOutput struct {
	Content    string  `json:"content"`
	DocumentId string  `json:"document_id"`
	Score      float32 `json:"score"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_documents",
		Description: "Search an owner's ingested documents and return an answer with citations",
	}, s.handleQuery)
}

func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	answer, err := s.query.Answer(ctx, input.Query, input.OwnerId, input.ConversationId)
	if err != nil {
		return nil, QueryOutput{}, err
	}

	output := QueryOutput{
		Answer:         answer.Answer,
		Citations:      make([]CitationOutput, len(answer.Citations)),
		ConversationId: answer.ConversationId,
	}
	for i, c := range answer.Citations {
		output.Citations[i] = CitationOutput{
			Content:    c.Content,
			DocumentId: c.DocumentId,
			Score:      c.Score,
		}
	}
	return nil, output, nil
}
