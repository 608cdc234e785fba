package client

import (
	"context"
	"time"
)

// UserFetcher fetches user details from the user service.
type UserFetcher interface {
	FetchUser(ctx context.Context, id int) (*UserDetail, error)
}

// ProductFetcher fetches product details from the product service.
type ProductFetcher interface {
	FetchProduct(ctx context.Context, id int) (*ProductDetail, error)
}

// OrderFetcher fetches order details from the order service.
type OrderFetcher interface {
	FetchOrder(ctx context.Context, id int) (*OrderDetail, error)
}

// UserClient is the HTTP implementation of UserFetcher.
type UserClient struct {
	httpClient
}

// NewUserClient creates a UserClient for the given base URL.
func NewUserClient(baseURL string, timeout time.Duration) *UserClient {
	return &UserClient{newHTTPClient(baseURL, timeout)}
}

func (c *UserClient) FetchUser(ctx context.Context, id int) (*UserDetail, error) {
	var detail UserDetail
	if err := c.getByID(ctx, id, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ProductClient is the HTTP implementation of ProductFetcher.
type ProductClient struct {
	httpClient
}

// NewProductClient creates a ProductClient for the given base URL.
func NewProductClient(baseURL string, timeout time.Duration) *ProductClient {
	return &ProductClient{newHTTPClient(baseURL, timeout)}
}

func (c *ProductClient) FetchProduct(ctx context.Context, id int) (*ProductDetail, error) {
	var detail ProductDetail
	if err := c.getByID(ctx, id, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// OrderClient is the HTTP implementation of OrderFetcher.
type OrderClient struct {
	httpClient
}

// NewOrderClient creates an OrderClient for the given base URL.
func NewOrderClient(baseURL string, timeout time.Duration) *OrderClient {
	return &OrderClient{newHTTPClient(baseURL, timeout)}
}

func (c *OrderClient) FetchOrder(ctx context.Context, id int) (*OrderDetail, error) {
	var detail OrderDetail
	if err := c.getByID(ctx, id, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}
