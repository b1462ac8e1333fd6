package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/bhavesh7662/Polymarket-eth-bot/clob/client"
	"github.com/bhavesh7662/Polymarket-eth-bot/clob/signing"
	"github.com/bhavesh7662/Polymarket-eth-bot/clob/types"
	"github.com/bhavesh7662/Polymarket-eth-bot/internal/execution"
	"github.com/bhavesh7662/Polymarket-eth-bot/internal/services"
	"github.com/bhavesh7662/Polymarket-eth-bot/internal/strategies/edgebuy"
	"github.com/bhavesh7662/Polymarket-eth-bot/pkg/config"
	"github.com/bhavesh7662/Polymarket-eth-bot/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "配置文件路径")
	dryRun := flag.Bool("dry-run", false, "纸交易模式：不发送真实订单")
	flag.Parse()

	// .env 不存在时忽略（生产环境直接注入环境变量）
	_ = godotenv.Load()

	// 配置文件可选：不存在时只用环境变量和默认值
	if _, statErr := os.Stat(*configPath); statErr != nil {
		*configPath = ""
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("加载配置失败: %v", err)
	}
	if *dryRun {
		cfg.DryRun = true
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		OutputFile: cfg.LogFile,
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     14,
		Compress:   true,
	}); err != nil {
		logrus.Fatalf("初始化日志失败: %v", err)
	}

	// 占位凭证属于致命错误：会话开始前必须拒绝
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("配置校验失败: %v", err)
	}

	privateKey, err := signing.PrivateKeyFromHex(cfg.Wallet.PrivateKey)
	if err != nil {
		logrus.Fatalf("解析私钥失败: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 先用 L1 认证推导/创建 API 凭证，再构造带 L2 凭证的客户端
	bootstrap := client.NewClient(cfg.Host, types.Chain(cfg.ChainID), privateKey, nil)
	creds, err := bootstrap.CreateOrDeriveAPIKey(ctx, 0)
	if err != nil {
		logrus.Fatalf("获取 API 凭证失败: %v", err)
	}
	clobClient := client.NewClient(cfg.Host, types.Chain(cfg.ChainID), privateKey, creds)
	// Polymarket 邮箱/Magic 钱包使用代理签名
	clobClient.SetFunder(cfg.Wallet.FunderAddress, types.SignatureTypeMagic)

	strategy := &edgebuy.Strategy{
		Config: edgebuy.Config{
			TokenID:         cfg.Market.TokenID,
			Symbol:          cfg.Market.Symbol,
			Interval:        cfg.Market.Interval,
			Lookback:        cfg.Market.Lookback,
			OrderSize:       cfg.Session.OrderSize,
			SpendCeiling:    cfg.Session.SpendCeiling,
			EdgeThreshold:   cfg.Session.EdgeThreshold,
			PollIntervalSec: cfg.Session.PollIntervalSec,
			DurationMin:     cfg.Session.DurationMin,
		},
		Klines:   services.NewBinanceSpotKlines(""),
		Quotes:   clobClient,
		Executor: execution.NewMarketBuyExecutor(clobClient, cfg.Market.TokenID, false, cfg.DryRun),
	}

	summary, err := strategy.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		logrus.Fatalf("会话异常退出: %v", err)
	}
	logrus.Infof("本次会话共下单 %d 笔，总消费 %.2f USDC", summary.OrdersPlaced, summary.TotalSpent)
}
