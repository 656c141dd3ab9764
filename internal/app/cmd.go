package app

// Command はアプリケーションの起動モードを表す。
type Command string

const (
	// CommandServe はAPIサーバーモードで起動することを示す。
	CommandServe Command = "serve"
	// CommandWorker はLINT_FEEDSを定期的に検査するワーカーモードで起動することを示す。
	CommandWorker Command = "worker"
	// CommandLint はLINT_FEEDSを1回だけ検査し、結果を出力することを示す。
	CommandLint Command = "lint"
	// CommandHealthcheck はヘルスチェックを実行することを示す。
	// distroless環境でのDockerヘルスチェック用。
	CommandHealthcheck Command = "healthcheck"
)

// ParseCommand はコマンドライン引数からサブコマンドを解析する。
// 引数が空またはサポート外のコマンドの場合はCommandServeを返す。
func ParseCommand(args []string) Command {
	if len(args) == 0 {
		return CommandServe
	}

	switch args[0] {
	case "worker":
		return CommandWorker
	case "serve":
		return CommandServe
	case "lint":
		return CommandLint
	case "healthcheck":
		return CommandHealthcheck
	default:
		return CommandServe
	}
}
