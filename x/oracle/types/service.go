package types

import "context"

type MsgServer interface {
	SubmitPrice(context.Context, *MsgSubmitPrice) (*MsgSubmitPriceResponse, error)
}

func RegisterMsgServer(server interface{}, impl MsgServer) {}

type QueryServer interface {
	AggregatedPrice(context.Context, *QueryAggregatedPriceRequest) (*QueryAggregatedPriceResponse, error)
	Prices(context.Context, *QueryPricesRequest) (*QueryPricesResponse, error)
}

func RegisterQueryServer(server interface{}, impl QueryServer) {}

type QueryAggregatedPriceRequest struct {
	Asset string `json:"asset"`
}
type QueryAggregatedPriceResponse struct {
	Price AggregatedPrice `json:"price"`
}

type QueryPricesRequest struct{}
type QueryPricesResponse struct {
	Feeds []PriceFeed `json:"feeds"`
}
