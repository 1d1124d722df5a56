package service

import (
	"net/http"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"
)

type JSON = map[string]interface{}

func Acceptance(a *biff.A, apiRequest func(method, path string) *apitest.Request) {

	a.Alternative("Create pool", func(a *biff.A) {
		resp := apiRequest("POST", "/pools").
			WithBodyJson(JSON{
				"name": "entities",
			}).Do()
		Save(resp, "Create pool", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		body := resp.BodyJsonMap()
		biff.AssertNotEqual(body["id"], "")
		delete(body, "id")
		biff.AssertEqualJson(body, JSON{
			"name":    "entities",
			"slots":   0,
			"live":    0,
			"free":    0,
			"handles": 0,
		})

		a.Alternative("Create pool twice", func(a *biff.A) {
			resp := apiRequest("POST", "/pools").
				WithBodyJson(JSON{
					"name": "entities",
				}).Do()
			Save(resp, "Create pool - already exists", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusConflict)
			biff.AssertEqualJson(resp.BodyJson(), JSON{
				"error": JSON{
					"message":     "pool 'entities': " + ErrorPoolAlreadyExists.Error(),
					"description": "pool name already in use",
				},
			})
		})

		a.Alternative("List pools", func(a *biff.A) {
			apiRequest("POST", "/pools").WithBodyJson(JSON{"name": "components"}).Do()

			resp := apiRequest("GET", "/pools").Do()
			Save(resp, "List pools", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			names := []interface{}{}
			for _, item := range resp.BodyJson().([]interface{}) {
				names = append(names, item.(JSON)["name"])
			}
			biff.AssertEqual(names, []interface{}{"components", "entities"})
		})

		a.Alternative("Retrieve pool", func(a *biff.A) {
			resp := apiRequest("GET", "/pools/entities").Do()
			Save(resp, "Retrieve pool", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqual(resp.BodyJsonMap()["name"], "entities")
		})

		a.Alternative("Drop pool", func(a *biff.A) {
			resp := apiRequest("POST", "/pools/entities:dropPool").Do()
			Save(resp, "Drop pool", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusNoContent)

			a.Alternative("Get dropped pool", func(a *biff.A) {
				resp := apiRequest("GET", "/pools/entities").Do()
				Save(resp, "Retrieve pool - not found", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"error": JSON{
						"message":     ErrorPoolNotFound.Error(),
						"description": "pool does not exist",
					},
				})
			})
		})

		a.Alternative("Allocate", func(a *biff.A) {
			resp := apiRequest("POST", "/pools/entities:allocate").Do()
			Save(resp, "Allocate", `
				Allocates a new handle. The most recently freed slot is reused
				first, otherwise the slot table grows by one.
			`)

			biff.AssertEqual(resp.StatusCode, http.StatusCreated)
			h1 := resp.BodyJsonMap()
			ticket1 := h1["ticket"]
			biff.AssertEqualJson(h1, JSON{"ticket": ticket1, "index": 0, "ref_count": 1})

			a.Alternative("Duplicate", func(a *biff.A) {
				resp := apiRequest("POST", "/pools/entities:duplicate").
					WithBodyJson(JSON{"ticket": ticket1}).Do()
				Save(resp, "Duplicate", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusCreated)
				h1a := resp.BodyJsonMap()
				ticket1a := h1a["ticket"]
				biff.AssertNotEqual(ticket1a, ticket1)
				biff.AssertEqualJson(h1a, JSON{"ticket": ticket1a, "index": 0, "ref_count": 2})

				a.Alternative("Release every copy", func(a *biff.A) {
					resp := apiRequest("POST", "/pools/entities:release").
						WithBodyJson(JSON{"ticket": ticket1a}).Do()
					Save(resp, "Release", ``)

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqualJson(resp.BodyJson(), JSON{"ticket": ticket1a, "index": 0, "ref_count": 1})

					resp = apiRequest("POST", "/pools/entities:release").
						WithBodyJson(JSON{"ticket": ticket1}).Do()
					biff.AssertEqualJson(resp.BodyJson(), JSON{"ticket": ticket1, "index": 0, "ref_count": 0})

					resp = apiRequest("POST", "/pools/entities:refCounts").Do()
					Save(resp, "Ref counts", ``)
					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqualJson(resp.BodyJson(), JSON{
						"ref_counts":   []int{0},
						"free_indices": []int{0},
					})

					a.Alternative("Allocate reuses freed slot", func(a *biff.A) {
						resp := apiRequest("POST", "/pools/entities:allocate").Do()
						biff.AssertEqual(resp.StatusCode, http.StatusCreated)
						biff.AssertEqualJson(resp.BodyJsonMap()["index"], 0)
						biff.AssertEqualJson(resp.BodyJsonMap()["ref_count"], 1)
					})

					a.Alternative("Release twice", func(a *biff.A) {
						resp := apiRequest("POST", "/pools/entities:release").
							WithBodyJson(JSON{"ticket": ticket1}).Do()
						Save(resp, "Release - ticket not found", ``)

						biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
					})
				})
			})

			a.Alternative("Allocate another", func(a *biff.A) {
				resp := apiRequest("POST", "/pools/entities:allocate").Do()
				biff.AssertEqualJson(resp.BodyJsonMap()["index"], 1)

				resp = apiRequest("GET", "/pools/entities").Do()
				body := resp.BodyJsonMap()
				delete(body, "id")
				biff.AssertEqualJson(body, JSON{
					"name":    "entities",
					"slots":   2,
					"live":    2,
					"free":    0,
					"handles": 2,
				})

				a.Alternative("Find pools with live handles", func(a *biff.A) {
					apiRequest("POST", "/pools").WithBodyJson(JSON{"name": "empty"}).Do()

					resp := apiRequest("POST", "/pools:find").
						WithBodyJson(JSON{
							"filter": JSON{
								"live": JSON{"$gt": 1},
							},
						}).Do()
					Save(resp, "Find pools", ``)

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					items := resp.BodyJson().([]interface{})
					biff.AssertEqual(len(items), 1)
					biff.AssertEqual(items[0].(JSON)["name"], "entities")
				})
			})

			a.Alternative("Duplicate unknown ticket", func(a *biff.A) {
				resp := apiRequest("POST", "/pools/entities:duplicate").
					WithBodyJson(JSON{"ticket": "invented"}).Do()
				Save(resp, "Duplicate - ticket not found", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"error": JSON{
						"message":     "ticket not found",
						"description": "ticket does not exist or was already released",
					},
				})
			})

			a.Alternative("Duplicate without body", func(a *biff.A) {
				resp := apiRequest("POST", "/pools/entities:duplicate").Do()

				biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
			})
		})

		a.Alternative("Find with skip and limit", func(a *biff.A) {
			apiRequest("POST", "/pools").WithBodyJson(JSON{"name": "a"}).Do()
			apiRequest("POST", "/pools").WithBodyJson(JSON{"name": "b"}).Do()

			resp := apiRequest("POST", "/pools:find").
				WithBodyJson(JSON{"skip": 1, "limit": 1}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			items := resp.BodyJson().([]interface{})
			biff.AssertEqual(len(items), 1)
			biff.AssertEqual(items[0].(JSON)["name"], "b")
		})
	})

	a.Alternative("Create pool without name", func(a *biff.A) {
		resp := apiRequest("POST", "/pools").
			WithBodyJson(JSON{}).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
	})

	a.Alternative("Allocate on not existing pool", func(a *biff.A) {
		resp := apiRequest("POST", "/pools/invented:allocate").Do()
		Save(resp, "Allocate - pool not found", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
		biff.AssertEqual(resp.BodyJsonMap()["error"].(map[string]interface{})["message"], ErrorPoolNotFound.Error())
	})
}
