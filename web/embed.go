// Package web は静的フロントエンドを埋め込み、SPAとして配信するHTTPハンドラーを提供する。
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"
)

//go:embed all:static
var staticFS embed.FS

// SPAHandler は埋め込み済みフロントエンドを配信するhttp.Handlerを返す。
// static/配下のファイルを配信し、一致しないパスはindex.htmlにフォールバックする。
func SPAHandler() http.Handler {
	subFS, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic("web: failed to create sub filesystem: " + err.Error())
	}

	fileServer := http.FileServer(http.FS(subFS))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/")
		if path == "" {
			path = "index.html"
		}

		if f, err := subFS.Open(path); err == nil {
			f.Close()
			fileServer.ServeHTTP(w, r)
			return
		}

		// SPAルーティングのためindex.htmlにフォールバック
		r.URL.Path = "/"
		fileServer.ServeHTTP(w, r)
	})
}
