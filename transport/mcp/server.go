package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rocketscienceinc/reversi-backend/internal/apperror"
	"github.com/rocketscienceinc/reversi-backend/internal/entity"
)

const (
	serverName    = "Reversi"
	serverVersion = "1.0.0"
	instructions  = `Reversi (Othello) on an 8x8 board.

Players are "A" and "B"; A moves first. A move places a disc on an empty cell and must flip at least one
run of opponent discs bracketed by the new disc. A player without a legal move is skipped. The game ends
when the board is full, when neither player can move, or when a player ends it.

TOOLS:
- create_game: start a new game and get its id
- game_state: board, score, whose turn it is and the legal moves
- move: place a disc at row r, column c (both 0-7)
- end_game: end the game early on behalf of a player`
)

type uGame interface {
	CreateGame(ctx context.Context) (*entity.State, error)
	GetState(ctx context.Context, gameID string) (*entity.State, error)
	MakeMove(ctx context.Context, gameID string, color entity.Color, row, col int) (*entity.State, error)
	EndGame(ctx context.Context, gameID string, by entity.Color) (*entity.State, error)
}

// Server exposes the game over the Model Context Protocol.
type Server struct {
	logger    *slog.Logger
	uGame     uGame
	mcpServer *server.MCPServer
}

func New(logger *slog.Logger, uGame uGame) *Server {
	that := &Server{
		logger: logger.With("component", "mcp"),
		uGame:  uGame,
		mcpServer: server.NewMCPServer(
			serverName,
			serverVersion,
			server.WithToolCapabilities(true),
			server.WithInstructions(instructions),
		),
	}

	that.registerTools()

	return that
}

func (that *Server) GetMCPServer() *server.MCPServer {
	return that.mcpServer
}

func (that *Server) Register(router *mux.Router) {
	router.HandleFunc("/mcp", that.ServeHTTP).Methods(http.MethodPost)
}

// ServeHTTP - handles one JSON-RPC message per request.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request", http.StatusBadRequest)
		return
	}

	response := that.mcpServer.HandleMessage(r.Context(), body)

	responseData, err := json.Marshal(response)
	if err != nil {
		log.Error("failed to marshal mcp response", "error", err)
		http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err = w.Write(responseData); err != nil {
		log.Error("failed to write mcp response", "error", err)
	}
}

func gameIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Game id returned by create_game",
	}
}

func colorProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        []string{string(entity.ColorA), string(entity.ColorB)},
		"description": description,
	}
}

func (that *Server) registerTools() {
	that.mcpServer.AddTool(mcp.Tool{
		Name:        "create_game",
		Description: "Create a new game in the starting position",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, that.handleCreateGame)

	that.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current state of a game",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": gameIDProperty(),
			},
			Required: []string{"game_id"},
		},
	}, that.handleGameState)

	that.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Place a disc for the player whose turn it is",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": gameIDProperty(),
				"r": map[string]interface{}{
					"type":        "integer",
					"description": "Row, 0-7",
				},
				"c": map[string]interface{}{
					"type":        "integer",
					"description": "Column, 0-7",
				},
				"color": colorProperty("Color of the moving player"),
			},
			Required: []string{"game_id", "r", "c", "color"},
		},
	}, that.handleMove)

	that.mcpServer.AddTool(mcp.Tool{
		Name:        "end_game",
		Description: "End the game early on behalf of a player",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": gameIDProperty(),
				"by":      colorProperty("Player ending the game"),
			},
			Required: []string{"game_id", "by"},
		},
	}, that.handleEndGame)
}

func (that *Server) handleCreateGame(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := that.uGame.CreateGame(ctx)
	if err != nil {
		return that.toolError(err), nil
	}

	return mcp.NewToolResultText(formatState(state)), nil
}

func (that *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	gameID, _ := args["game_id"].(string)

	state, err := that.uGame.GetState(ctx, gameID)
	if err != nil {
		return that.toolError(err), nil
	}

	return mcp.NewToolResultText(formatState(state)), nil
}

func (that *Server) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	gameID, _ := args["game_id"].(string)
	color, _ := args["color"].(string)

	row, rowOK := intArgument(args, "r")
	col, colOK := intArgument(args, "c")
	if !rowOK || !colOK {
		return that.toolError(fmt.Errorf("%w: r and c must be integers", apperror.ErrBadRequest)), nil
	}

	state, err := that.uGame.MakeMove(ctx, gameID, entity.Color(color), row, col)
	if err != nil {
		return that.toolError(err), nil
	}

	return mcp.NewToolResultText(formatState(state)), nil
}

func (that *Server) handleEndGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	gameID, _ := args["game_id"].(string)
	by, _ := args["by"].(string)

	state, err := that.uGame.EndGame(ctx, gameID, entity.Color(by))
	if err != nil {
		return that.toolError(err), nil
	}

	return mcp.NewToolResultText(formatState(state)), nil
}

func (that *Server) toolError(err error) *mcp.CallToolResult {
	code := apperror.Code(err)
	message := err.Error()

	if code == apperror.CodeInternal {
		that.logger.Error("tool call failed", "error", err)
		message = "internal server error"
	}

	return mcp.NewToolResultError(code + ": " + message)
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}

	return args
}

// intArgument - JSON numbers arrive as float64; fractions are rejected.
func intArgument(args map[string]interface{}, name string) (int, bool) {
	switch value := args[name].(type) {
	case float64:
		if value != float64(int(value)) {
			return 0, false
		}
		return int(value), true
	case int:
		return value, true
	default:
		return 0, false
	}
}

// formatState - renders the board for reading followed by the state as JSON.
func formatState(state *entity.State) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Game %s\n\n", state.ID)
	b.WriteString("  0 1 2 3 4 5 6 7\n")

	for r, row := range state.Board {
		fmt.Fprintf(&b, "%d", r)
		for _, cell := range row {
			if cell == entity.Empty {
				b.WriteString(" .")
			} else {
				b.WriteString(" " + string(cell))
			}
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nScore: A=%d B=%d\n", state.Score.A, state.Score.B)

	switch {
	case state.EndedBy != entity.Empty:
		fmt.Fprintf(&b, "Game over: ended by %s\n", state.EndedBy)
	case state.GameOver && state.Winner == entity.Empty:
		b.WriteString("Game over: draw\n")
	case state.GameOver:
		fmt.Fprintf(&b, "Game over: %s wins\n", state.Winner)
	default:
		fmt.Fprintf(&b, "Turn: %s, legal moves: %d\n", state.CurrentPlayer, len(state.ValidMoves))
	}

	if data, err := json.Marshal(state); err == nil {
		b.WriteString("\n")
		b.Write(data)
	}

	return b.String()
}
