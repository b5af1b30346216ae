package request_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/erraggy/paramprep/param"
	"github.com/erraggy/paramprep/request"
)

func ExampleOperation_Prepare() {
	op := &request.Operation{
		Query: []*param.Definition{
			param.Must(param.Integer("limit", param.Coerce(), param.Maximum(100))),
			param.Must(param.Array("fields")),
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/pets?limit=10&fields=id,name", nil)
	res, err := op.Prepare(req, nil)
	fmt.Println(res.Query["limit"], res.Query["fields"], err)

	req = httptest.NewRequest(http.MethodGet, "/pets?limit=500", nil)
	_, err = op.Prepare(req, nil)
	for _, e := range param.ErrorsOf(err) {
		fmt.Println(e)
	}
	// Output:
	// 10 [id name] <nil>
	// /query/limit: value 500 exceeds maximum 100
}
