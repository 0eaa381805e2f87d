package rpc

import (
	"fmt"

	"github.com/alder-network/alder/lib"
)

func ErrServerTimeout() lib.ErrorI {
	return lib.NewError(lib.CodeRPCTimeout, lib.RPCModule, "server timeout")
}

func ErrInvalidParams(err error) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidParams, lib.RPCModule, fmt.Sprintf("invalid params: %s", err.Error()))
}

func ErrPostRequest(err error) lib.ErrorI {
	return lib.NewError(lib.CodePostRequest, lib.RPCModule, fmt.Sprintf("http.Post() failed with err: %s", err.Error()))
}

func ErrGetRequest(err error) lib.ErrorI {
	return lib.NewError(lib.CodeGetRequest, lib.RPCModule, fmt.Sprintf("http.Get() failed with err: %s", err.Error()))
}

func ErrHttpStatus(status string, statusCode int, body []byte) lib.ErrorI {
	return lib.NewError(lib.CodeHttpStatus, lib.RPCModule, fmt.Sprintf("http response bad status %s with code %d and body %s", status, statusCode, body))
}

func ErrReadBody(err error) lib.ErrorI {
	return lib.NewError(lib.CodeReadBody, lib.RPCModule, fmt.Sprintf("io.ReadAll(http.ResponseBody) failed with err: %s", err.Error()))
}

func ErrServerDown(url string) lib.ErrorI {
	return lib.NewError(lib.CodeServerDown, lib.RPCModule, fmt.Sprintf("rpc server at %s is not reachable", url))
}
