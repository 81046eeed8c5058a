// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

Handlers never read the raw URL, query or body themselves: the validation
middleware has already normalized them, and the session middleware has
already verified the caller.
*/
package requestutil

import (
	"net/http"

	"github.com/taibuivan/taakbeheer/internal/platform/ctxutil"
	"github.com/taibuivan/taakbeheer/internal/platform/sec"
	"github.com/taibuivan/taakbeheer/internal/platform/validate"
)

/*
Input returns the normalized params, query and body of the request.
*/
func Input(request *http.Request) validate.Input {
	return ctxutil.GetInput(request.Context())
}

/*
Session returns the verified session of the request.

The zero Session is returned for routes mounted without authentication.
*/
func Session(request *http.Request) sec.Session {
	return ctxutil.GetSession(request.Context())
}

/*
TargetUserID resolves a user id param that may be the literal "me".
*/
func TargetUserID(request *http.Request, param string) int64 {
	values := Input(request).Params
	if values.String(param) == "me" {
		return Session(request).UserID()
	}
	return values.Int(param)
}
