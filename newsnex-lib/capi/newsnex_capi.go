// ABOUTME: C API wrapper for the NewsNex library to enable FFI usage
// ABOUTME: Provides C-compatible functions returning JSON strings for native applications

package main

/*
#include <stdlib.h>
*/
import "C"
import (
	"context"
	"encoding/json"
	"unsafe"

	newsnex "newsnex-api/newsnex-lib"
)

// Only one client is supported per process
var client *newsnex.Client

//export NewsNexInit
func NewsNexInit() C.int {
	var err error
	client, err = newsnex.NewClient(newsnex.WithQuietMode())
	if err != nil {
		return -1
	}
	return 0
}

//export NewsNexInitWithCache
func NewsNexInitWithCache(cacheType *C.char, cachePath *C.char) C.int {
	opt := newsnex.WithCacheOption(newsnex.CacheOption{Type: newsnex.CacheTypeMemory})
	if C.GoString(cacheType) == "sqlite" {
		opt = newsnex.WithCacheOption(newsnex.CacheOption{
			Type:     newsnex.CacheTypeSQLite,
			FilePath: C.GoString(cachePath),
		})
	}

	var err error
	client, err = newsnex.NewClient(opt, newsnex.WithQuietMode())
	if err != nil {
		return -1
	}
	return 0
}

//export NewsNexClose
func NewsNexClose() {
	if client != nil {
		client.Close()
		client = nil
	}
}

//export NewsNexExtractURL
func NewsNexExtractURL(url *C.char, minConfidence C.int, maxProfiles C.int) *C.char {
	if client == nil {
		return errorString("client not initialized")
	}

	result, err := client.ExtractURL(
		context.Background(),
		C.GoString(url),
		newsnex.WithMinConfidence(int(minConfidence)),
		newsnex.WithMaxProfiles(int(maxProfiles)),
	)
	if err != nil {
		return errorString(err.Error())
	}
	return jsonString(result)
}

//export NewsNexExtractDocument
func NewsNexExtractDocument(data *C.char, length C.int, contentType *C.char, filename *C.char) *C.char {
	if client == nil {
		return errorString("client not initialized")
	}

	result, err := client.ExtractDocument(
		context.Background(),
		C.GoBytes(unsafe.Pointer(data), length),
		C.GoString(contentType),
		C.GoString(filename),
	)
	if err != nil {
		return errorString(err.Error())
	}
	return jsonString(result)
}

//export NewsNexRecent
func NewsNexRecent(limit C.int) *C.char {
	if client == nil {
		return errorString("client not initialized")
	}

	summaries, err := client.Recent(context.Background(), int(limit))
	if err != nil {
		return errorString(err.Error())
	}
	return jsonString(summaries)
}

//export NewsNexFreeString
func NewsNexFreeString(str *C.char) {
	C.free(unsafe.Pointer(str))
}

func jsonString(v interface{}) *C.char {
	data, err := json.Marshal(v)
	if err != nil {
		return errorString("failed to marshal response")
	}
	return C.CString(string(data))
}

func errorString(msg string) *C.char {
	data, _ := json.Marshal(map[string]string{"error": msg})
	return C.CString(string(data))
}

func main() {}
