package mask_test

import (
	"fmt"

	"github.com/MrEthical07/banditry/mask"
)

func Example() {
	perms := mask.MustDefine("example-perms",
		mask.Bit{Name: "read", Value: 0b001},
		mask.Bit{Name: "write", Value: 0b010},
		mask.Bit{Name: "execute", Value: 0b100},
	)
	defer mask.Forget(perms.Name())

	m := perms.New(0)
	if err := m.Push("read", "write"); err != nil {
		panic(err)
	}

	canRun, _ := m.Has("read", "execute")
	fmt.Println(m.Uint64(), m.Names(), canRun)

	withExec, _ := m.Or("execute")
	fmt.Println(withExec, m)
	// Output:
	// 3 [read write] false
	// example-perms(read|write|execute) example-perms(read|write)
}
