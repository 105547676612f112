package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/pass-four/internal/logger"
	"github.com/palemoky/pass-four/internal/protocol/codec"
	"github.com/palemoky/pass-four/internal/ui"
)

func main() {
	serverAddr := flag.String("server", "localhost:1780", "服务器地址")
	codecName := flag.String("codec", "json", "消息编码 (json|proto)，需与服务器一致")
	name := flag.String("name", "", "玩家昵称，留空则启动后输入")
	logFile := flag.String("log", "pass-four-client.log", "日志文件")
	flag.Parse()

	// 终端界面占用标准输出，日志写入文件
	f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "打开日志文件失败: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()
	logger.SetOutput(f)

	c, err := codec.ByName(*codecName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	serverURL := fmt.Sprintf("ws://%s/ws", *serverAddr)
	model := ui.NewOnlineModel(serverURL, c, *name)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.L().Errorf("启动客户端时出错: %v", err)
		fmt.Fprintf(os.Stderr, "启动客户端时出错: %v\n", err)
		os.Exit(1)
	}
}
