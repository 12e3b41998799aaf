package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Telerehab-Labs/telerehab-go-sdk/models"
	"github.com/Telerehab-Labs/telerehab-go-sdk/utils"
)

// CoachSession is one connected client working through exercises in front
// of their camera. The websocket listener goroutine feeds poses into PoseCh;
// the frame handler drains it, judges each pose against the active exercise
// and pushes feedback back over the same socket.
type CoachSession struct {
	ID         string
	Ctx        context.Context
	Cancel     context.CancelFunc
	Connection *websocket.Conn
	Store      *utils.SessionStore
	Estimator  *utils.EstimatorClient
	Catalog    []models.Exercise
	Logger     *zap.Logger

	// PoseCh carries at most one pending pose: when the frame cycle is
	// still busy with the previous frame, new poses are dropped rather
	// than queued (skip-frame backpressure).
	PoseCh chan models.Pose

	// Session state
	IsActive     bool
	StartTime    time.Time
	LastActivity time.Time

	FrameHandler *FrameHandler

	// exerciseMu guards the active-exercise slot, written by the websocket
	// listener and read once per frame by the frame cycle.
	exerciseMu sync.RWMutex
	active     *models.Exercise

	// writeMu serializes websocket writes across the listener and the
	// frame cycle goroutine.
	writeMu sync.Mutex

	// estimatorBusy guards against overlapping estimator calls; frames
	// arriving while one is in flight are dropped.
	estimatorBusy atomic.Bool
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow connections from any origin
	},
}

func NewCoachSession(id string, conn *websocket.Conn, store *utils.SessionStore, estimator *utils.EstimatorClient, catalog []models.Exercise) *CoachSession {
	ctx, cancel := context.WithCancel(context.Background())

	// Create a logger with session ID context
	logger := zap.L().With(zap.String("session_id", id))

	return &CoachSession{
		ID:         id,
		Ctx:        ctx,
		Cancel:     cancel,
		Connection: conn,
		Store:      store,
		Estimator:  estimator,
		Catalog:    catalog,
		Logger:     logger,

		PoseCh: make(chan models.Pose, 1),

		IsActive:     true,
		StartTime:    time.Now(),
		LastActivity: time.Now(),
	}
}

// ActiveExercise reads the session's exercise selection. ok is false while
// nothing is selected.
func (session *CoachSession) ActiveExercise() (models.Exercise, bool) {
	session.exerciseMu.RLock()
	defer session.exerciseMu.RUnlock()
	if session.active == nil {
		return models.Exercise{}, false
	}
	return *session.active, true
}

func (session *CoachSession) setActiveExercise(ex *models.Exercise) {
	session.exerciseMu.Lock()
	session.active = ex
	session.exerciseMu.Unlock()
}

// Stop tears the session down: the frame cycle exits via the cancelled
// context and the connection closes. Safe to call more than once.
func (session *CoachSession) Stop() {
	if !session.IsActive {
		return
	}
	session.Logger.Info("Stopping session", zap.Duration("uptime", time.Since(session.StartTime)))
	session.IsActive = false
	session.Cancel()

	if session.Connection != nil {
		session.Connection.Close()
	}
}

// WebSocketMessage is the envelope for every message in both directions.
type WebSocketMessage struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

type selectExercisePayload struct {
	ID int `json:"id"`
}

type framePayload struct {
	Data string `json:"data"` // base64-encoded JPEG
}

// HandleCoachSession upgrades the connection and runs the session until the
// client disconnects or sends stop.
func HandleCoachSession(w http.ResponseWriter, r *http.Request, store *utils.SessionStore, estimator *utils.EstimatorClient, catalog []models.Exercise) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.L().Error("Failed to upgrade to websocket", zap.Error(err))
		return
	}
	defer conn.Close()

	sessionID := uuid.New().String()
	session := NewCoachSession(sessionID, conn, store, estimator, catalog)
	session.Logger.Info("New coaching session started")

	utils.SessionsActive.Inc()
	defer utils.SessionsActive.Dec()

	session.FrameHandler = InitFrameHandler(session)

	go session.heartbeat()

	session.listenWebsocketMessages(conn)

	session.Logger.Info("Coaching session ended")
	session.Stop()
}

func (session *CoachSession) listenWebsocketMessages(conn *websocket.Conn) {
	for {
		var msg WebSocketMessage
		err := conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				session.Logger.Error("WebSocket error", zap.Error(err))
			}
			return
		}
		session.LastActivity = time.Now()

		switch msg.Type {
		case "select_exercise":
			session.handleSelectExercise(msg.Data)
		case "clear_exercise":
			session.handleClearExercise()
		case "pose":
			session.handlePoseMessage(msg.Data)
		case "frame":
			session.handleFrameMessage(msg.Data)
		case "ping":
			session.sendWebSocketMessage("pong", nil)
		case "stop":
			session.Logger.Info("Received stop command from client")
			session.sendWebSocketMessage("stop_confirmation", map[string]interface{}{
				"session_id": session.ID,
				"message":    "Session stopped successfully",
			})
			session.Stop()
			return
		default:
			session.Logger.Warn("Unknown message type", zap.String("type", msg.Type))
		}
	}
}

func (session *CoachSession) handleSelectExercise(data json.RawMessage) {
	var payload selectExercisePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		session.Logger.Error("Invalid select_exercise payload", zap.Error(err))
		session.sendError("select_exercise payload must carry an exercise id")
		return
	}

	exercise, ok := models.ExerciseByID(session.Catalog, payload.ID)
	if !ok {
		session.Logger.Warn("Unknown exercise id selected", zap.Int("exercise_id", payload.ID))
		session.sendError("unknown exercise id")
		return
	}

	session.setActiveExercise(&exercise)
	session.Logger.Info("Exercise selected", zap.Int("exercise_id", exercise.ID), zap.String("exercise", exercise.Name))

	ctx, cancel := context.WithTimeout(session.Ctx, 2*time.Second)
	defer cancel()
	if err := session.Store.SaveSelection(ctx, session.ID, exercise.ID); err != nil {
		session.Logger.Warn("Failed to persist exercise selection", zap.Error(err))
	}

	session.sendWebSocketMessage("exercise_selected", exercise)
}

func (session *CoachSession) handleClearExercise() {
	session.setActiveExercise(nil)
	session.Logger.Info("Exercise selection cleared")

	ctx, cancel := context.WithTimeout(session.Ctx, 2*time.Second)
	defer cancel()
	if err := session.Store.ClearSelection(ctx, session.ID); err != nil {
		session.Logger.Warn("Failed to clear persisted selection", zap.Error(err))
	}

	session.sendWebSocketMessage("exercise_cleared", nil)
}

// handlePoseMessage takes precomputed keypoints from clients that run the
// estimator on-device.
func (session *CoachSession) handlePoseMessage(data json.RawMessage) {
	var pose models.Pose
	if err := json.Unmarshal(data, &pose); err != nil {
		session.Logger.Error("Invalid pose payload", zap.Error(err))
		session.sendError("pose payload must carry keypoints")
		return
	}
	session.enqueuePose(pose)
}

// handleFrameMessage routes a raw JPEG frame through the external estimator.
// Only one estimator call runs at a time; frames arriving meanwhile are
// dropped so feedback always reflects a recent frame.
func (session *CoachSession) handleFrameMessage(data json.RawMessage) {
	if session.Estimator == nil {
		session.sendError("server has no pose estimator configured; send pose messages instead")
		return
	}

	var payload framePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		session.Logger.Error("Invalid frame payload", zap.Error(err))
		session.sendError("frame payload must carry base64 image data")
		return
	}

	imgBytes, err := base64.StdEncoding.DecodeString(payload.Data)
	if err != nil {
		session.Logger.Error("Failed to decode frame data", zap.Error(err))
		session.sendError("frame data is not valid base64")
		return
	}

	if !session.estimatorBusy.CompareAndSwap(false, true) {
		utils.FramesDropped.Inc()
		session.Logger.Debug("Estimator busy, dropping frame")
		return
	}

	go func() {
		defer session.estimatorBusy.Store(false)

		ctx, cancel := context.WithTimeout(session.Ctx, 10*time.Second)
		defer cancel()

		poses, err := session.Estimator.EstimatePoses(ctx, imgBytes)
		if err != nil {
			utils.EstimatorErrors.Inc()
			session.Logger.Error("Pose estimation failed", zap.Error(err))
			return
		}

		best, ok := utils.BestPose(poses)
		if !ok {
			session.FrameHandler.NotifyNoPose()
			return
		}
		session.enqueuePose(best)
	}()
}

func (session *CoachSession) enqueuePose(pose models.Pose) {
	select {
	case session.PoseCh <- pose:
	default:
		utils.FramesDropped.Inc()
		session.Logger.Debug("Frame cycle busy, dropping pose")
	}
}

func (session *CoachSession) heartbeat() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			session.Logger.Debug("Session heartbeat")
			session.sendWebSocketMessage("heartbeat", map[string]interface{}{
				"session_id": session.ID,
				"uptime":     time.Since(session.StartTime).String(),
			})
		case <-session.Ctx.Done():
			return
		}
	}
}

func (session *CoachSession) sendError(message string) {
	session.sendWebSocketMessage("error", map[string]string{"message": message})
}

func (session *CoachSession) sendWebSocketMessage(msgType string, data interface{}) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		session.Logger.Error("Failed to marshal websocket payload", zap.Error(err), zap.String("type", msgType))
		return
	}

	msg := WebSocketMessage{
		Type:      msgType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}

	session.writeMu.Lock()
	defer session.writeMu.Unlock()
	if err := session.Connection.WriteJSON(msg); err != nil {
		session.Logger.Error("Failed to send websocket message", zap.Error(err), zap.String("type", msgType))
	}
}
