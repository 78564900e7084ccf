package gameapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/beka-birhanu/vinom-explorer/api/identity"
	dmn "github.com/beka-birhanu/vinom-explorer/domain"
	"github.com/beka-birhanu/vinom-explorer/game"
	"github.com/beka-birhanu/vinom-explorer/game/maze"
	"github.com/beka-birhanu/vinom-explorer/service"
	"github.com/beka-birhanu/vinom-explorer/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const defaultStreamTick = 50 * time.Millisecond

// Options tunes a SessionController.
type Options struct {
	StreamTick     time.Duration // animation tick cadence of websocket streams
	AllowedOrigins []string      // origins allowed to open streams, any when empty
}

// SessionController serves maze sessions.
type SessionController struct {
	manager      i.SessionManager
	auth         i.SessionAuthenticator
	logger       i.Logger
	upgrader     websocket.Upgrader
	tickInterval time.Duration
}

// NewSessionController initializes a SessionController.
func NewSessionController(sm i.SessionManager, auth i.SessionAuthenticator, logger i.Logger, opts *Options) *SessionController {
	if opts == nil {
		opts = &Options{}
	}
	if opts.StreamTick <= 0 {
		opts.StreamTick = defaultStreamTick
	}

	return &SessionController{
		manager:      sm,
		auth:         auth,
		logger:       logger,
		tickInterval: opts.StreamTick,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(opts.AllowedOrigins),
		},
	}
}

// originChecker allows requests without an Origin header and those from
// the listed origins. A "*" entry or an empty list allows everything.
func originChecker(allowed []string) func(*http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = true
	}
	if len(set) == 0 {
		return func(*http.Request) bool { return true }
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set[origin]
	}
}

// RegisterPublic registers public routes.
func (sc *SessionController) RegisterPublic(route *gin.RouterGroup) {
	route.POST("/sessions", sc.create)
	route.GET("/leaderboard", sc.leaderboard)
}

// RegisterProtected registers routes that need the session's token.
func (sc *SessionController) RegisterProtected(route *gin.RouterGroup) {
	sessions := route.Group("/sessions/:ID")
	{
		sessions.GET("", sc.state)
		sessions.GET("/maze", sc.maze)
		sessions.POST("/commands", sc.commands)
		sessions.POST("/tick", sc.tick)
		sessions.GET("/stream", sc.stream)
	}
}

// create starts a session and hands out its token.
func (sc *SessionController) create(ctx *gin.Context) {
	var request CreateSessionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, snap, err := sc.manager.Create(ctx, request.Width, request.Height, request.Seed)
	if err != nil {
		sc.fail(ctx, err)
		return
	}

	token, err := sc.auth.Issue(id)
	if err != nil {
		sc.fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, &CreateSessionResponse{
		ID:    id.String(),
		Token: token,
		State: newStateResponse(snap),
	})
}

// state returns where the player is and what they see.
func (sc *SessionController) state(ctx *gin.Context) {
	id, ok := sc.sessionID(ctx)
	if !ok {
		return
	}

	snap, err := sc.manager.Get(ctx, id)
	if err != nil {
		sc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newStateResponse(snap))
}

// maze returns the walls of the session's maze.
func (sc *SessionController) maze(ctx *gin.Context) {
	id, ok := sc.sessionID(ctx)
	if !ok {
		return
	}

	snap, err := sc.manager.Get(ctx, id)
	if err != nil {
		sc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newMazeResponse(snap.Layout))
}

// commands runs player commands in order.
func (sc *SessionController) commands(ctx *gin.Context) {
	id, ok := sc.sessionID(ctx)
	if !ok {
		return
	}

	var request CommandsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cmds := make([]game.Command, len(request.Commands))
	for n, c := range request.Commands {
		cmds[n] = game.Command(c)
	}
	sc.apply(ctx, id, cmds)
}

// tick advances a view transition.
func (sc *SessionController) tick(ctx *gin.Context) {
	id, ok := sc.sessionID(ctx)
	if !ok {
		return
	}

	var request TickRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if request.Count == 0 {
		request.Count = 1
	}

	cmds := make([]game.Command, request.Count)
	for n := range cmds {
		cmds[n] = game.CmdTick
	}
	sc.apply(ctx, id, cmds)
}

// leaderboard lists the best runs for a maze size.
func (sc *SessionController) leaderboard(ctx *gin.Context) {
	rows, errRows := strconv.Atoi(ctx.Query("rows"))
	cols, errCols := strconv.Atoi(ctx.Query("cols"))
	if errRows != nil || errCols != nil || rows <= 0 || cols <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "rows and cols must be positive integers"})
		return
	}

	var limit int64
	if raw := ctx.Query("limit"); raw != "" {
		var err error
		if limit, err = strconv.ParseInt(raw, 10, 64); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
	}

	runs, err := sc.manager.Leaderboard(ctx, rows, cols, limit)
	if err != nil {
		sc.fail(ctx, err)
		return
	}

	response := make([]RunResponse, 0, len(runs))
	for _, r := range runs {
		response = append(response, newRunResponse(r))
	}
	ctx.JSON(http.StatusOK, response)
}

func (sc *SessionController) apply(ctx *gin.Context, id uuid.UUID, cmds []game.Command) {
	applied, snap, err := sc.manager.Apply(ctx, id, cmds...)
	if err != nil {
		sc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, &CommandsResponse{
		Applied: applied,
		State:   newStateResponse(snap),
	})
}

// sessionID parses the :ID path parameter and checks that the request's token
// was issued for it. It writes the error response when it reports false.
func (sc *SessionController) sessionID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return uuid.Nil, false
	}

	owned, ok := identity.SessionID(ctx)
	if !ok || owned != id {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "token does not grant access to this session"})
		return uuid.Nil, false
	}
	return id, true
}

func (sc *SessionController) fail(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, dmn.ErrSessionNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCommand),
		errors.Is(err, service.ErrTooManyCommands),
		errors.Is(err, maze.ErrInvalidDimensions):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		sc.logger.Error("request failed: " + err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
