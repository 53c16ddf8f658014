package routes

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"compass/compass/controllers"
	"compass/compass/services/research"
	"compass/compass/utils/logging"
	"compass/compass/utils/types"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

//go:embed static/index.html
var indexHTML []byte

// IndexHandler serves the single-page research UI.
func IndexHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func ResearchRoutes(ctrl *controllers.ResearchController) chi.Router {
	r := chi.NewRouter()

	// POST /research/ : run to completion and return the report.
	// The websocket route below is long lived and has no timeout.
	r.With(middleware.Timeout(5*time.Minute)).Post("/", handleJSON(func(r *http.Request) (any, int, error) {
		var req types.ResearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, http.StatusBadRequest, err
		}
		report, err := ctrl.Research(r.Context(), req)
		if errors.Is(err, research.ErrEmptyCompany) {
			return nil, http.StatusBadRequest, err
		}
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return report, http.StatusOK, nil
	}))

	// GET /research/ws : stream ResearchEvents for one company
	r.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusInternalError, "internal error")

		ctx := r.Context()
		readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		var req types.ResearchRequest
		err = wsjson.Read(readCtx, conn, &req)
		cancel()
		if err != nil {
			wsjson.Write(ctx, conn, types.ResearchEvent{Type: types.EventError, Message: "invalid json"})
			conn.Close(websocket.StatusUnsupportedData, "invalid json")
			return
		}

		events, errCh := ctrl.ResearchStream(ctx, req)
		for ev := range events {
			if err := wsjson.Write(ctx, conn, ev); err != nil {
				logging.ErrorLogger.Error("websocket write failed", zap.Error(err))
				return
			}
		}
		if err := <-errCh; err != nil && !errors.Is(err, research.ErrEmptyCompany) {
			conn.Close(websocket.StatusInternalError, "research failed")
			return
		}
		conn.Close(websocket.StatusNormalClosure, "")
	})
	return r
}
