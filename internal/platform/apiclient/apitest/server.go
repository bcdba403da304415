// Package apitest runs a fake course platform backend on gin for tests of
// the API client and the facades.
package apitest

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"course-miniapp/internal/identity"
	"course-miniapp/internal/platform/apiclient"
	"course-miniapp/internal/storage/memory"
)

// DevID is the identity every request from Server.Client carries.
const DevID int64 = 424242

type Server struct {
	*httptest.Server
	Engine   *gin.Engine
	Client   *apiclient.Client
	Resolver *identity.Resolver
}

// New starts a backend whose /api group is populated by routes and sits
// behind IdentityMiddleware. It is closed with the test.
func New(t testing.TB, routes func(api *gin.RouterGroup), opts ...apiclient.Option) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)

	engine := gin.New()
	engine.Use(RequestLogger(log))
	api := engine.Group("/api", IdentityMiddleware())
	routes(api)

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)

	store := memory.New()
	resolver := identity.NewResolver(store, DevID, log)

	opts = append([]apiclient.Option{
		apiclient.WithHost(identity.HostContext{Hostname: "localhost"}),
		apiclient.WithLogger(log),
	}, opts...)
	client, err := apiclient.New(srv.URL+"/api", resolver, opts...)
	if err != nil {
		t.Fatalf("apitest: create client: %v", err)
	}

	return &Server{Server: srv, Engine: engine, Client: client, Resolver: resolver}
}
