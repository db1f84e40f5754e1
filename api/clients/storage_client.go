// Package clients provides Go clients for the blob store HTTP API.
package clients

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/castornet/castor/api"
	"github.com/castornet/castor/interfaces"
)

// StorageClient talks to a castor server over HTTP.
type StorageClient struct {
	// ServerAddr is the base URL of the server, e.g. http://127.0.0.1:8080
	ServerAddr string

	// Client is the HTTP client to use. Defaults to http.DefaultClient.
	Client *http.Client
}

func (c *StorageClient) httpClient() *http.Client {
	if c.Client != nil {
		return c.Client
	}
	return http.DefaultClient
}

// AddNode registers a storage node with the server.
func (c *StorageClient) AddNode(nodeID, location string) error {
	body, err := json.Marshal(api.AddNodeRequest{NodeID: nodeID, Location: location})
	if err != nil {
		return err
	}

	resp, err := c.httpClient().Post(c.ServerAddr+"/api/v1/nodes", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("could not request add-node endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errorFromResponse("add-node", resp)
	}
	return nil
}

// RemoveNode removes a storage node from the server's registry.
func (c *StorageClient) RemoveNode(nodeID string) error {
	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/v1/nodes/%s", c.ServerAddr, nodeID), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("could not request remove-node endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errorFromResponse("remove-node", resp)
	}
	return nil
}

// Store submits a payload and returns its content ID.
func (c *StorageClient) Store(filename string, data []byte) (interfaces.ContentID, error) {
	body, err := json.Marshal(api.StoreRequest{Filename: filename, Data: data})
	if err != nil {
		return interfaces.ContentID{}, err
	}

	resp, err := c.httpClient().Post(c.ServerAddr+"/api/v1/blobs", "application/json", bytes.NewReader(body))
	if err != nil {
		return interfaces.ContentID{}, fmt.Errorf("could not request store endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return interfaces.ContentID{}, errorFromResponse("store", resp)
	}

	var parsed api.StoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return interfaces.ContentID{}, fmt.Errorf("could not parse store response: %w", err)
	}
	return interfaces.NewContentIDFromHex(parsed.ContentID)
}

// Retrieve fetches the payload stored under id and the filename it was
// stored with, taken from the Content-Disposition header.
func (c *StorageClient) Retrieve(id interfaces.ContentID) ([]byte, string, error) {
	resp, err := c.httpClient().Get(fmt.Sprintf("%s/api/v1/blobs/%s", c.ServerAddr, id))
	if err != nil {
		return nil, "", fmt.Errorf("could not request retrieve endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", errorFromResponse("retrieve", resp)
	}

	var filename string
	if disposition := resp.Header.Get("Content-Disposition"); disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil {
			filename = params["filename"]
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("could not read retrieve response: %w", err)
	}
	return data, filename, nil
}

// Delete removes the payload stored under id.
func (c *StorageClient) Delete(id interfaces.ContentID) error {
	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/v1/blobs/%s", c.ServerAddr, id), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("could not request delete endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errorFromResponse("delete", resp)
	}
	return nil
}

func errorFromResponse(endpoint string, resp *http.Response) error {
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s endpoint returned non-200 response: %d", endpoint, resp.StatusCode)
	}
	return fmt.Errorf("%s endpoint returned error %d: %s", endpoint, resp.StatusCode, string(bodyBytes))
}
