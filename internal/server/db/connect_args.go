package db

import "strings"

// ArgCheckSameThread 为 false 时，SQLite 连接可在任意 goroutine 间共享
const ArgCheckSameThread = "check_same_thread"

// ConnectArgs 驱动相关的连接参数
type ConnectArgs map[string]any

// ConnectArgsFor 按连接串前缀生成驱动参数：SQLite 关闭同线程限制，其他数据库为空
// 前缀区分大小写，"SQLITE://" 不会得到参数（引擎因此退回单连接）
func ConnectArgsFor(rawURL string) ConnectArgs {
	args := ConnectArgs{}
	if strings.HasPrefix(rawURL, "sqlite") {
		args[ArgCheckSameThread] = false
	}
	return args
}

func (a ConnectArgs) Clone() ConnectArgs {
	out := make(ConnectArgs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// sameThreadOnly 未显式关闭时视为开启
func (a ConnectArgs) sameThreadOnly() bool {
	v, ok := a[ArgCheckSameThread]
	if !ok {
		return true
	}
	b, ok := v.(bool)
	return !ok || b
}
