package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/mapandra/roadroute/pkg/engine/routingalgorithm"
	"github.com/mapandra/roadroute/pkg/roadnet"
	"github.com/mapandra/roadroute/pkg/roadparser"
	"github.com/mapandra/roadroute/pkg/server/rest"
	"github.com/mapandra/roadroute/pkg/server/rest/service"
	"github.com/mapandra/roadroute/pkg/snap"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

var (
	listenAddr = flag.String("listenaddr", ":5000", "server listen address")
	roadFile   = flag.String("f", "roads.geojson", "geojson file with the road network features")
)

func main() {
	flag.Parse()

	buildBundle := func() (*service.Bundle, error) {
		features, err := roadparser.LoadRoadFeatures(*roadFile)
		if err != nil {
			return nil, err
		}
		graph, segments := roadnet.BuildGraph(features)
		log.Printf("built road graph: %d nodes, %d edges, %d snap segments",
			graph.NumNodes(), graph.NumEdges(), len(segments))
		return &service.Bundle{
			Graph:   graph,
			Locator: snap.NewNodeLocator(graph, segments),
			Router:  routingalgorithm.NewRouteAlgorithm(graph),
		}, nil
	}

	initial, err := buildBundle()
	if err != nil {
		log.Fatal(err)
	}

	navigatorSvc := service.NewNavigationService(initial, buildBundle)

	reg := prometheus.NewRegistry()
	m := rest.NewMetrics(reg)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(rest.PromHTTPMiddleware(m))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	rest.NavigationRouter(r, navigatorSvc)

	fmt.Printf("\nserver started at %s\n", *listenAddr)

	log.Fatal(http.ListenAndServe(*listenAddr, r))
}
