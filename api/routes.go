package api

import (
	"net/http"
	"strconv"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	dextypes "github.com/algoswap/algoswap/x/dex/types"
)

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/v1")
	{
		v1.GET("/params", s.handleParams)
		v1.GET("/pools", s.handlePools)
		v1.GET("/balances/:account/:asset", s.handleBalance)

		pool := v1.Group("/pools/:asset_a/:asset_b")
		{
			pool.GET("", s.handlePool)
			pool.GET("/exists", s.handlePoolExists)
			pool.GET("/lp/:account", s.handleLpBalance)
			pool.GET("/quote", s.handleQuote)
		}

		if s.config.EnableSubmit {
			v1.POST("/bundles", s.handleSubmitBundle)
		}
	}
}

// healthCheck returns server health status
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

func pairParams(c *gin.Context) (dextypes.AssetID, dextypes.AssetID, bool) {
	a, err := dextypes.ParseAssetID(c.Param("asset_a"))
	if err != nil {
		respondError(c, err)
		return 0, 0, false
	}
	b, err := dextypes.ParseAssetID(c.Param("asset_b"))
	if err != nil {
		respondError(c, err)
		return 0, 0, false
	}
	return a, b, true
}

func (s *Server) handleParams(c *gin.Context) {
	resp, err := s.backend.Queries().Params(s.backend.NewContext(), &dextypes.QueryParamsRequest{})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handlePools(c *gin.Context) {
	req := &dextypes.QueryPoolsRequest{}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			badRequest(c, "limit must be a non-negative integer")
			return
		}
		req.Limit = limit
	}
	if raw := c.Query("start_after"); raw != "" {
		pk, err := dextypes.ParsePairKey(raw)
		if err != nil {
			respondError(c, err)
			return
		}
		req.StartAfter = pk
	}

	resp, err := s.backend.Queries().Pools(s.backend.NewContext(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, PoolsResponse{Pools: resp.Pools, NextKey: resp.NextKey})
}

func (s *Server) handlePool(c *gin.Context) {
	a, b, ok := pairParams(c)
	if !ok {
		return
	}
	resp, err := s.backend.Queries().Pool(s.backend.NewContext(), &dextypes.QueryPoolRequest{AssetA: a, AssetB: b})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, PoolResponse{PairKey: resp.PairKey, Pool: resp.Pool})
}

func (s *Server) handlePoolExists(c *gin.Context) {
	a, b, ok := pairParams(c)
	if !ok {
		return
	}
	resp, err := s.backend.Queries().PoolExists(s.backend.NewContext(), &dextypes.QueryPoolRequest{AssetA: a, AssetB: b})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleLpBalance(c *gin.Context) {
	a, b, ok := pairParams(c)
	if !ok {
		return
	}
	account := c.Param("account")
	resp, err := s.backend.Queries().LpBalance(s.backend.NewContext(), &dextypes.QueryLpBalanceRequest{
		AssetA:  a,
		AssetB:  b,
		Account: account,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, LpBalanceResponse{Account: account, Shares: resp.Shares})
}

func (s *Server) handleQuote(c *gin.Context) {
	a, b, ok := pairParams(c)
	if !ok {
		return
	}
	sent, err := dextypes.ParseAssetID(c.Query("sent"))
	if err != nil {
		respondError(c, err)
		return
	}
	amount, ok := math.NewIntFromString(c.Query("amount"))
	if !ok {
		badRequest(c, "amount must be an integer")
		return
	}

	resp, err := s.backend.Queries().SimulateSwap(s.backend.NewContext(), &dextypes.QuerySimulateSwapRequest{
		AssetA:    a,
		AssetB:    b,
		SentAsset: sent,
		AmountIn:  amount,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.Quote)
}

func (s *Server) handleBalance(c *gin.Context) {
	account, err := sdk.AccAddressFromBech32(c.Param("account"))
	if err != nil {
		badRequest(c, "invalid account address")
		return
	}
	asset, err := dextypes.ParseAssetID(c.Param("asset"))
	if err != nil {
		respondError(c, err)
		return
	}

	amount, optedIn := s.backend.AssetBalance(s.backend.NewContext(), account, uint64(asset))
	c.JSON(http.StatusOK, BalanceResponse{
		Account: account.String(),
		Asset:   uint64(asset),
		OptedIn: optedIn,
		Amount:  amount,
	})
}

// handleSubmitBundle executes a signed-off bundle directly. Only mounted in
// local development setups.
func (s *Server) handleSubmitBundle(c *gin.Context) {
	var bundle dextypes.Bundle
	if err := c.ShouldBindJSON(&bundle); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid bundle", Code: "INVALID_INPUT", Details: err.Error()})
		return
	}

	res, err := s.backend.ExecuteBundle(s.backend.NewContext(), bundle)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
