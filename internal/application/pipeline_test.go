package application

import (
	"context"
	"testing"

	"wallet-balances-reporter/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestConvertAndReport_ZeroPriceSkips(t *testing.T) {
	t.Parallel()
	sink := &fakeSink{}
	p := NewPipeline(fixedPrice(0), sink, false, 1, nil, nil)

	out := p.ConvertAndReport(context.Background(), "ETH", 1.5, domain.SourceCoinbase)
	require.Equal(t, OutcomeSkipped, out)
	require.Empty(t, sink.recorded())
}

func TestConvertAndReport_Production(t *testing.T) {
	t.Parallel()
	sink := &fakeSink{}
	p := NewPipeline(fixedPrice(2500), sink, false, 1, nil, nil)

	out := p.ConvertAndReport(context.Background(), "eth", 2, domain.SourceCoinbasePro)
	require.Equal(t, OutcomeReported, out)

	evs := sink.recorded()
	require.Len(t, evs, 1)
	require.Equal(t, "WalletBalanceSnapshot", evs[0].Type)
	require.Equal(t, "ETH", evs[0].Balance.Crypto)
	require.InDelta(t, 5000.0, evs[0].Balance.USDEquivalent, 1e-9)
	require.Equal(t, domain.SourceCoinbasePro, evs[0].Balance.Source)
}

func TestConvertAndReport_DryRunPrefixesType(t *testing.T) {
	t.Parallel()
	prodSink, testSink := &fakeSink{}, &fakeSink{}
	NewPipeline(fixedPrice(2500), prodSink, false, 1, nil, nil).ConvertAndReport(context.Background(), "ETH", 2, domain.SourceCoinbase)
	NewPipeline(fixedPrice(2500), testSink, true, 1, nil, nil).ConvertAndReport(context.Background(), "ETH", 2, domain.SourceCoinbase)

	prod, test := prodSink.recorded(), testSink.recorded()
	require.Len(t, prod, 1)
	require.Len(t, test, 1)
	require.Equal(t, "TestWalletBalanceSnapshot", test[0].Type)
	require.Equal(t, prod[0].Attributes(), test[0].Attributes())
}

func TestConvertAndReport_SinkFailure(t *testing.T) {
	t.Parallel()
	sink := &fakeSink{err: errBoom}
	p := NewPipeline(fixedPrice(10), sink, false, 1, nil, nil)
	require.Equal(t, OutcomeFailed, p.ConvertAndReport(context.Background(), "ETH", 1, domain.SourceCelsiusNetwork))
}
