package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dkustov/imagekeep/internal/service"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
	})

	// routes requiring a bearer token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/upload", h.upload)
		r.Get("/api/gallery", h.gallery)
		r.Get("/api/images", h.images)
		r.Get("/uploads/{filename}", h.download)

		r.Get("/resize/{filename}", h.transform(service.OpResize))
		r.Get("/rotate/{filename}", h.transform(service.OpRotate))
		r.Get("/adjust_brightness/{filename}", h.transform(service.OpBrightness))
		r.Get("/sharpen/{filename}", h.transform(service.OpSharpen))
		r.Get("/sobel_edge/{filename}", h.transform(service.OpSobel))
		r.Get("/canny_edge/{filename}", h.transform(service.OpCanny))
		r.Get("/histogram_equalization/{filename}", h.transform(service.OpEqualize))
		r.Get("/gaussian_blur/{filename}", h.transform(service.OpBlur))
		r.Get("/perspective_transform/{filename}", h.transform(service.OpPerspective))
	})

	return router
}
