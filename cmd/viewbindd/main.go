// Command viewbindd serves templates bound to a live data tree. Views are
// served under /views/{name}; the tree is read and changed under
// /data/{path}, and every change shows up in the views bound to it.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jessevdk/go-flags"
	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"howett.net/viewbind"
	"howett.net/viewbind/helpers"
	"howett.net/viewbind/internal/config"
	"howett.net/viewbind/internal/datastore"
	"howett.net/viewbind/lib/four"
	"howett.net/viewbind/lib/rayman"
	"howett.net/viewbind/views"
	"howett.net/viewbind/web"
	"howett.net/viewbind/web/data"
	"howett.net/viewbind/web/pages"
)

type options struct {
	ConfigFiles []string `long:"config" short:"c" description:"A configuration file (.yml) to read; can be specified multiple times."`
	Data        string   `long:"data" short:"d" description:"data file (.yml); overrides data.path from the configuration"`
	Once        string   `long:"once" description:"render the named view to stdout and exit"`
}

func configureLogger(logger *logrus.Logger, conf *viewbind.Configuration) {
	logger.Level = conf.Logging.Level.LogrusLevel()
	if conf.Logging.Format == "json" {
		logger.Formatter = &logrus.JSONFormatter{}
	}
}

func loadData(opts options, conf *viewbind.Configuration) (*datastore.Store, error) {
	path := conf.Data.Path
	if opts.Data != "" {
		path = opts.Data
	}
	if path == "" {
		return datastore.New(nil), nil
	}
	return datastore.LoadFile(path)
}

func newModel(conf *viewbind.Configuration, logger logrus.FieldLogger) (*views.Model, error) {
	return views.New(conf.Templates.Glob,
		views.HelpersOption(helpers.Builtins{}),
		views.ViewClassesOption(helpers.Classes()...),
		views.CacheSizeOption(conf.Templates.CacheSize),
		views.FieldLoggingOption(logger),
	)
}

func reloadOnHangup(pageHandler *pages.Handler, logger logrus.FieldLogger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGHUP)
	go func() {
		for range c {
			if err := pageHandler.Reload(context.Background()); err != nil {
				logger.WithField("error", err).Error("failed to reload templates")
			}
		}
	}()
}

func main() {
	logger := logrus.New()
	var opts options
	_, err := flags.Parse(&opts)
	if flagErr, ok := err.(*flags.Error); flagErr != nil && ok {
		return
	}

	conf, err := config.NewFileConfigurationService(opts.ConfigFiles).LoadConfiguration()
	if err != nil {
		logger.Fatal(err)
	}
	configureLogger(logger, conf)

	store, err := loadData(opts, conf)
	if err != nil {
		logger.Fatal(err)
	}

	m, err := newModel(conf, logger)
	if err != nil {
		logger.Fatal(err)
	}

	pageHandler := pages.NewHandler(m, store)
	if opts.Once != "" {
		b, err := pageHandler.Render(context.Background(), opts.Once)
		if err != nil {
			logger.Fatal(err)
		}
		os.Stdout.Write(b)
		return
	}

	router := mux.NewRouter()
	pageHandler.BindRoutes(web.Subrouter(router, "/views"))
	data.NewHandler(store, web.DataRenderer{}).BindRoutes(web.Subrouter(router, "/data"))

	accessLog := logger.WriterLevel(logrus.InfoLevel)
	defer accessLog.Close()

	stack := alice.New(
		func(h http.Handler) http.Handler { return handlers.CombinedLoggingHandler(accessLog, h) },
		rayman.Middleware(logger),
	)
	if conf.Web.Proxied {
		stack = stack.Append(handlers.ProxyHeaders)
	}

	reloadOnHangup(pageHandler, logger)

	server := &http.Server{
		Addr:    conf.Web.Bind,
		Handler: stack.Then(four.WrapHandler(router, pageHandler.NotFound())),
	}
	logger.WithField("addr", server.Addr).Info("listening")
	logger.Fatal(server.ListenAndServe())
}
