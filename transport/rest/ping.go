package rest

import (
	"net/http"

	"github.com/gorilla/mux"
)

type PingHandler interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)
	Register(router *mux.Router)
}

type pingHandler struct{}

func NewPingHandler() PingHandler {
	return &pingHandler{}
}

func (that *pingHandler) Register(router *mux.Router) {
	router.HandleFunc("/ping", that.PingHandler).Methods(http.MethodGet)
}

func (that *pingHandler) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}
