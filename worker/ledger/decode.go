package ledger

import (
	"fmt"

	"burrow/core"
	"burrow/pkg/payload"

	"github.com/shopspring/decimal"
)

func unmarshal(data []byte) (payload.Fields, error) {
	f, err := payload.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidPayload, err)
	}
	return f, nil
}

// amounts move balances, so zero and negative values are rejected
// before they reach the ledger
func positiveAmount(f payload.Fields, key string) (decimal.Decimal, error) {
	amount, err := f.Decimal(key)
	if err != nil {
		return decimal.Zero, err
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s is %s", core.ErrInvalidAmount, key, amount)
	}
	return amount, nil
}

// decodeTransfer parses the shared payload shape of deposit, withdraw,
// borrow and repay events.
func decodeTransfer(event *core.ChainEvent) (*core.TransferEvent, error) {
	f, err := unmarshal(event.Payload)
	if err != nil {
		return nil, err
	}

	account, err := f.String("account_id")
	if err != nil {
		return nil, err
	}
	amount, err := positiveAmount(f, "amount")
	if err != nil {
		return nil, err
	}
	token, err := f.String("token_id")
	if err != nil {
		return nil, err
	}

	return &core.TransferEvent{
		AccountID: account,
		Amount:    amount,
		TokenID:   token,
	}, nil
}

func decodeLiquidate(event *core.ChainEvent) (*core.LiquidateEvent, error) {
	f, err := unmarshal(event.Payload)
	if err != nil {
		return nil, err
	}

	liquidator, err := f.String("account_id")
	if err != nil {
		return nil, err
	}
	liquidatee, err := f.String("liquidation_account_id")
	if err != nil {
		return nil, err
	}
	collateral, err := f.Decimal("collateral_sum")
	if err != nil {
		return nil, err
	}
	repaid, err := f.Decimal("repaid_sum")
	if err != nil {
		return nil, err
	}

	return &core.LiquidateEvent{
		AccountID:            liquidator,
		LiquidationAccountID: liquidatee,
		CollateralSum:        collateral,
		RepaidSum:            repaid,
	}, nil
}

// decodeLiquidationLegs parses the per-asset legs from the caller
// args of a liquidate receipt.
func decodeLiquidationLegs(event *core.ChainEvent) (*core.LiquidationLegs, error) {
	f, err := unmarshal(event.CallerArgs)
	if err != nil {
		return nil, err
	}

	decode := func(key string) ([]core.AssetAmount, error) {
		items, err := f.Array(key)
		if err != nil {
			return nil, err
		}

		legs := make([]core.AssetAmount, 0, len(items))
		for _, item := range items {
			token, err := item.String("token_id")
			if err != nil {
				return nil, err
			}
			amount, err := positiveAmount(item, "amount")
			if err != nil {
				return nil, err
			}
			legs = append(legs, core.AssetAmount{TokenID: token, Amount: amount})
		}
		return legs, nil
	}

	in, err := decode("in_assets")
	if err != nil {
		return nil, err
	}
	out, err := decode("out_assets")
	if err != nil {
		return nil, err
	}

	return &core.LiquidationLegs{InAssets: in, OutAssets: out}, nil
}

func decodeForceClose(event *core.ChainEvent) (*core.ForceCloseEvent, error) {
	f, err := unmarshal(event.Payload)
	if err != nil {
		return nil, err
	}

	liquidatee, err := f.String("liquidation_account_id")
	if err != nil {
		return nil, err
	}
	collateral, err := f.Decimal("collateral_sum")
	if err != nil {
		return nil, err
	}
	repaid, err := f.Decimal("repaid_sum")
	if err != nil {
		return nil, err
	}

	return &core.ForceCloseEvent{
		LiquidationAccountID: liquidatee,
		CollateralSum:        collateral,
		RepaidSum:            repaid,
	}, nil
}

func decodeControllerConfig(event *core.ChainEvent) (*core.ControllerConfig, error) {
	f, err := unmarshal(event.CallerArgs)
	if err != nil {
		return nil, err
	}

	config, err := f.Object("config")
	if err != nil {
		return nil, err
	}

	oracle, err := config.String("oracle_account_id")
	if err != nil {
		return nil, err
	}
	owner, err := config.String("owner_id")
	if err != nil {
		return nil, err
	}
	boosterToken, err := config.String("booster_token_id")
	if err != nil {
		return nil, err
	}
	boosterDecimals, err := config.Int64("booster_decimals")
	if err != nil {
		return nil, err
	}
	maxAssets, err := config.Int64("max_num_assets")
	if err != nil {
		return nil, err
	}
	multiplier, err := config.Decimal("x_booster_multiplier_at_maximum_staking_duration")
	if err != nil {
		return nil, err
	}

	return &core.ControllerConfig{
		Oracle:            oracle,
		Owner:             owner,
		BoosterTokenID:    boosterToken,
		BoosterDecimals:   int32(boosterDecimals),
		MaxAssets:         int32(maxAssets),
		BoosterMultiplier: multiplier,
	}, nil
}

func decodeAssetConfig(event *core.ChainEvent) (*core.AssetConfig, error) {
	f, err := unmarshal(event.CallerArgs)
	if err != nil {
		return nil, err
	}

	token, err := f.String("token_id")
	if err != nil {
		return nil, err
	}
	config, err := f.Object("asset_config")
	if err != nil {
		return nil, err
	}

	reserveRatio, err := config.Int64("reserve_ratio")
	if err != nil {
		return nil, err
	}
	targetUtilization, err := config.Int64("target_utilization")
	if err != nil {
		return nil, err
	}
	targetRate, err := config.Decimal("target_utilization_rate")
	if err != nil {
		return nil, err
	}
	maxRate, err := config.Decimal("max_utilization_rate")
	if err != nil {
		return nil, err
	}
	volatilityRatio, err := config.Int64("volatility_ratio")
	if err != nil {
		return nil, err
	}
	extraDecimals, err := config.Int64("extra_decimals")
	if err != nil {
		return nil, err
	}
	canDeposit, err := config.Bool("can_deposit")
	if err != nil {
		return nil, err
	}
	canWithdraw, err := config.Bool("can_withdraw")
	if err != nil {
		return nil, err
	}
	canBorrow, err := config.Bool("can_borrow")
	if err != nil {
		return nil, err
	}
	canCollateral, err := config.Bool("can_use_as_collateral")
	if err != nil {
		return nil, err
	}

	return &core.AssetConfig{
		TokenID:               token,
		ReserveRatio:          reserveRatio,
		TargetUtilization:     targetUtilization,
		TargetUtilizationRate: targetRate,
		MaxUtilizationRate:    maxRate,
		VolatilityRatio:       volatilityRatio,
		ExtraDecimals:         int32(extraDecimals),
		CanDeposit:            canDeposit,
		CanWithdraw:           canWithdraw,
		CanBorrow:             canBorrow,
		CanUseAsCollateral:    canCollateral,
	}, nil
}

// decodePrices parses the oracle callback payload into per-token feed
// entries.
func decodePrices(event *core.ChainEvent) ([]*core.PriceUpdate, error) {
	f, err := unmarshal(event.CallerArgs)
	if err != nil {
		return nil, err
	}

	data, err := f.Object("data")
	if err != nil {
		return nil, err
	}
	prices, err := data.Array("prices")
	if err != nil {
		return nil, err
	}

	updates := make([]*core.PriceUpdate, 0, len(prices))
	for _, entry := range prices {
		asset, err := entry.String("asset_id")
		if err != nil {
			return nil, err
		}
		price, err := entry.Object("price")
		if err != nil {
			return nil, err
		}
		multiplier, err := price.String("multiplier")
		if err != nil {
			return nil, err
		}
		decimals, err := price.Int64("decimals")
		if err != nil {
			return nil, err
		}

		updates = append(updates, &core.PriceUpdate{
			TokenID:    asset,
			Multiplier: multiplier,
			Decimals:   decimals,
		})
	}
	return updates, nil
}

// decodeFarmReward parses a farm reward schedule update. The farm id
// is a tagged union keyed by side.
func decodeFarmReward(event *core.ChainEvent) (*core.FarmReward, error) {
	f, err := unmarshal(event.CallerArgs)
	if err != nil {
		return nil, err
	}

	farm, err := f.Object("farm_id")
	if err != nil {
		return nil, err
	}

	side := core.RewardSideSupplied
	market, err := farm.String(core.RewardSideSupplied)
	if err != nil {
		side = core.RewardSideBorrowed
		if market, err = farm.String(core.RewardSideBorrowed); err != nil {
			return nil, err
		}
	}

	rewardToken, err := f.String("reward_token_id")
	if err != nil {
		return nil, err
	}
	perDay, err := f.Decimal("new_reward_per_day")
	if err != nil {
		return nil, err
	}
	logBase, err := f.Decimal("new_booster_log_base")
	if err != nil {
		return nil, err
	}
	amount, err := f.Decimal("reward_amount")
	if err != nil {
		return nil, err
	}

	return &core.FarmReward{
		MarketID:       market,
		Side:           side,
		RewardTokenID:  rewardToken,
		RewardPerDay:   perDay,
		BoosterLogBase: logBase,
		RewardAmount:   amount,
	}, nil
}
