package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/appdotbuilder/simple-todo-4b0a/internal/dto"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

// doJSON sends a request with an optional JSON body and decodes the JSON
// response into out (skipped when out is nil). A JSON "null" body leaves a
// pointer target nil, which is how the API reports not-found.
func doJSON(method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, serverURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("server: %s", apiErr.Error)
		}
		return fmt.Errorf("server: HTTP %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func parseIDArg(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func printTodo(t dto.TodoResponse) {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	fmt.Printf("[%s] #%d %s\n", mark, t.ID, t.Title)
	if t.Description != nil {
		fmt.Printf("      %s\n", *t.Description)
	}
	fmt.Printf("      created %s, updated %s\n",
		t.CreatedAt.Format(time.RFC3339), t.UpdatedAt.Format(time.RFC3339))
}
