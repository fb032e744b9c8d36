// internal/zookeeper/lock.go
package zookeeper

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-zookeeper/zk"
)

const (
	lockRoot    = "/tably/table_locks" // 桌台提交锁的根节点
	lockTimeout = 15 * time.Second     // 等待锁的上限，防止死等
)

// DistributedLock 是基于临时顺序节点的分布式锁。
// 订单提交用它对同一张桌子做单写者串行化。
type DistributedLock struct {
	conn     *Conn
	path     string // 锁路径，例如 /tably/table_locks/table-12
	lockNode string // 成功获取锁后自己创建的节点
}

// NewDistributedLock 创建一个针对 resourceID 的锁实例，并确保父路径存在。
func NewDistributedLock(conn *Conn, resourceID string) (*DistributedLock, error) {
	if err := ensurePath(conn, lockRoot); err != nil {
		return nil, err
	}
	lockPath := lockRoot + "/" + resourceID
	if err := ensurePath(conn, lockPath); err != nil {
		return nil, err
	}
	return &DistributedLock{conn: conn, path: lockPath}, nil
}

func ensurePath(conn *Conn, path string) error {
	// 逐级创建，节点已存在不算错误
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	current := ""
	for _, p := range parts {
		current += "/" + p
		if exists, _, err := conn.Exists(current); err != nil {
			return fmt.Errorf("failed to check lock path %s: %w", current, err)
		} else if exists {
			continue
		}
		if _, err := conn.Create(current, []byte{}, 0, zk.WorldACL(zk.PermAll)); err != nil && err != zk.ErrNodeExists {
			return fmt.Errorf("failed to create lock path %s: %w", current, err)
		}
	}
	return nil
}

// Lock 尝试获取锁，获取不到时阻塞等待前一个持有者释放。
func (l *DistributedLock) Lock() error {
	nodePath, err := l.conn.CreateProtectedEphemeralSequential(l.path+"/lock-", []byte{}, zk.WorldACL(zk.PermAll))
	if err != nil {
		return fmt.Errorf("failed to create sequential node: %w", err)
	}
	l.lockNode = nodePath

	for {
		children, _, err := l.conn.Children(l.path)
		if err != nil {
			return fmt.Errorf("failed to list lock children: %w", err)
		}
		sort.Strings(children)

		myNodeName := strings.TrimPrefix(l.lockNode, l.path+"/")
		if myNodeName == children[0] {
			// 序号最小，锁到手
			return nil
		}

		// 监听比自己小的前一个节点，避免惊群
		prevIndex := -1
		for i, child := range children {
			if child == myNodeName {
				prevIndex = i - 1
				break
			}
		}
		if prevIndex < 0 {
			return errors.New("lock node missing from children listing")
		}
		prevNodePath := l.path + "/" + children[prevIndex]

		exists, _, eventChan, err := l.conn.ExistsW(prevNodePath)
		if err != nil {
			if err == zk.ErrNoNode {
				continue
			}
			return fmt.Errorf("failed to watch previous lock node: %w", err)
		}
		if !exists {
			continue
		}

		select {
		case event := <-eventChan:
			if event.Type == zk.EventNodeDeleted {
				continue
			}
		case <-time.After(lockTimeout):
			// 超时放弃，清掉自己的节点，避免挡住后来者
			_ = l.conn.Delete(l.lockNode, -1)
			l.lockNode = ""
			return errors.New("timeout waiting for table lock")
		}
	}
}

// Unlock 释放锁。
func (l *DistributedLock) Unlock() error {
	if l.lockNode == "" {
		return errors.New("no lock to unlock")
	}
	err := l.conn.Delete(l.lockNode, -1)
	if err != nil && err != zk.ErrNoNode {
		return fmt.Errorf("failed to delete lock node: %w", err)
	}
	l.lockNode = ""
	return nil
}
