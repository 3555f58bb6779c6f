package source

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// blobDownloader is the part of the Azure client used here.
type blobDownloader interface {
	Download(ctx context.Context, container, blob string) (io.ReadCloser, error)
}

type azureClient struct {
	client *azblob.Client
}

func (a azureClient) Download(ctx context.Context, container, blob string) (io.ReadCloser, error) {
	resp, err := a.client.DownloadStream(ctx, container, blob, nil)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

type azureSource struct {
	account   string
	container string
	blob      string
	connStr   string

	// newClient is replaced in tests.
	newClient func() (blobDownloader, error)
}

func newAzure(u *url.URL, opts Options) (*azureSource, error) {
	container, blob := splitFirst(u.Path)
	if u.Host == "" || container == "" || blob == "" {
		return nil, fmt.Errorf("azblob location must be azblob://account/container/blob")
	}
	a := &azureSource{
		account:   u.Host,
		container: container,
		blob:      blob,
		connStr:   opts.AzureConnectionString,
	}
	a.newClient = a.defaultClient
	return a, nil
}

func (a *azureSource) Name() string {
	return "azblob://" + a.account + "/" + a.container + "/" + a.blob
}

func (a *azureSource) Open(ctx context.Context) (io.ReadCloser, error) {
	client, err := a.newClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	body, err := client.Download(ctx, a.container, a.blob)
	if err != nil {
		return nil, fmt.Errorf("downloading blob: %w", err)
	}
	return body, nil
}

func (a *azureSource) defaultClient() (blobDownloader, error) {
	if a.connStr != "" {
		c, err := azblob.NewClientFromConnectionString(a.connStr, nil)
		if err != nil {
			return nil, err
		}
		return azureClient{client: c}, nil
	}

	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", a.account)
	c, err := azblob.NewClientWithNoCredential(serviceURL, nil)
	if err != nil {
		return nil, err
	}
	return azureClient{client: c}, nil
}
