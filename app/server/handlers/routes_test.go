package handlers

import (
	"context"
	"contribution-hub/app/server/apidocs"
	"regexp"
	"testing"
)

var routeParam = regexp.MustCompile(`:(\w+)`)

// 每个注册的路由都要写进接口文档
func TestRoutesDocumented(t *testing.T) {
	te := newTestEnv(t)

	doc, err := apidocs.Load(context.Background())
	if err != nil {
		t.Fatalf("load docs: %v", err)
	}

	documented := 0
	for _, route := range te.e.Routes() {
		p := routeParam.ReplaceAllString(route.Path, "{$1}")
		item := doc.Paths.Value(p)
		if item == nil {
			t.Errorf("%s %s not documented", route.Method, p)
			continue
		}
		if item.GetOperation(route.Method) == nil {
			t.Errorf("%s %s not documented", route.Method, p)
			continue
		}
		documented++
	}

	operations := 0
	for _, item := range doc.Paths.Map() {
		operations += len(item.Operations())
	}
	if documented != operations {
		t.Errorf("%d routes match the docs, which describe %d operations", documented, operations)
	}
}
