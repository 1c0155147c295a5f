package keeper

import (
	"math/big"
	"sync"
	"time"

	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/algoswap/algoswap/x/dex/types"
)

// DEXMetrics holds all Prometheus metrics for the DEX module
type DEXMetrics struct {
	// Bundle metrics
	BundlesTotal  *prometheus.CounterVec
	BundleLatency *prometheus.HistogramVec

	// Volume metrics
	SwapVolume       *prometheus.CounterVec
	LiquidityAdded   *prometheus.CounterVec
	LiquidityRemoved *prometheus.CounterVec

	// Pool state
	PoolReserves  *prometheus.GaugeVec
	LPTokenSupply *prometheus.GaugeVec
	PoolCreations prometheus.Counter
}

var (
	dexMetricsOnce sync.Once
	dexMetrics     *DEXMetrics
)

// NewDEXMetrics creates and registers DEX metrics (singleton pattern)
func NewDEXMetrics() *DEXMetrics {
	dexMetricsOnce.Do(func() {
		dexMetrics = &DEXMetrics{
			BundlesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "algoswap",
					Subsystem: "dex",
					Name:      "bundles_total",
					Help:      "Total number of bundles by operation and outcome",
				},
				[]string{"type", "status"},
			),
			BundleLatency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: "algoswap",
					Subsystem: "dex",
					Name:      "bundle_latency_seconds",
					Help:      "Bundle execution latency in seconds",
					Buckets:   prometheus.DefBuckets,
				},
				[]string{"type"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "algoswap",
					Subsystem: "dex",
					Name:      "swap_volume_total",
					Help:      "Total swap input volume in base units",
				},
				[]string{"pair", "asset"},
			),
			LiquidityAdded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "algoswap",
					Subsystem: "dex",
					Name:      "liquidity_added_total",
					Help:      "Total liquidity added to pools",
				},
				[]string{"pair", "asset"},
			),
			LiquidityRemoved: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "algoswap",
					Subsystem: "dex",
					Name:      "liquidity_removed_total",
					Help:      "Total liquidity removed from pools",
				},
				[]string{"pair", "asset"},
			),
			PoolReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "algoswap",
					Subsystem: "dex",
					Name:      "pool_reserves",
					Help:      "Current pool reserves",
				},
				[]string{"pair", "asset"},
			),
			LPTokenSupply: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "algoswap",
					Subsystem: "dex",
					Name:      "lp_token_supply",
					Help:      "LP token supply per pool",
				},
				[]string{"pair"},
			),
			PoolCreations: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "algoswap",
					Subsystem: "dex",
					Name:      "pool_creations_total",
					Help:      "Total number of pools created",
				},
			),
		}
	})
	return dexMetrics
}

func toFloat(v math.Int) float64 {
	if v.IsNil() {
		return 0
	}
	f, _ := new(big.Float).SetInt(v.BigInt()).Float64()
	return f
}

func (m *DEXMetrics) observeBundle(kind string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	} else if kind == types.TypeMsgCreatePool {
		m.PoolCreations.Inc()
	}
	m.BundlesTotal.WithLabelValues(kind, status).Inc()
	m.BundleLatency.WithLabelValues(kind).Observe(elapsed.Seconds())
}

func (m *DEXMetrics) observePool(pool types.Pool) {
	if m == nil {
		return
	}
	pair := pool.PairKey().Label()
	m.PoolReserves.WithLabelValues(pair, pool.AssetA.String()).Set(toFloat(pool.ReserveA))
	m.PoolReserves.WithLabelValues(pair, pool.AssetB.String()).Set(toFloat(pool.ReserveB))
	m.LPTokenSupply.WithLabelValues(pair).Set(toFloat(pool.TotalLpSupply))
}

func (m *DEXMetrics) observeDeposit(pool types.Pool, amountA, amountB math.Int) {
	if m == nil {
		return
	}
	pair := pool.PairKey().Label()
	m.LiquidityAdded.WithLabelValues(pair, pool.AssetA.String()).Add(toFloat(amountA))
	m.LiquidityAdded.WithLabelValues(pair, pool.AssetB.String()).Add(toFloat(amountB))
}

func (m *DEXMetrics) observeWithdrawal(pool types.Pool, amountA, amountB math.Int) {
	if m == nil {
		return
	}
	pair := pool.PairKey().Label()
	m.LiquidityRemoved.WithLabelValues(pair, pool.AssetA.String()).Add(toFloat(amountA))
	m.LiquidityRemoved.WithLabelValues(pair, pool.AssetB.String()).Add(toFloat(amountB))
}

func (m *DEXMetrics) observeSwap(pool types.Pool, sent types.AssetID, amountIn math.Int) {
	if m == nil {
		return
	}
	m.SwapVolume.WithLabelValues(pool.PairKey().Label(), sent.String()).Add(toFloat(amountIn))
}
